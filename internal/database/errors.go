package database

import "github.com/koustreak/dbinspect/internal/errs"

// Constructor helpers for errors raised by this package itself. Drivers
// map their native errors with their own mapError.

func errQuery(msg string, cause error) *errs.Error {
	return errs.Wrap(errs.KindQueryFailed, msg, cause)
}

func errInvalidInput(msg string) *errs.Error {
	return errs.New(errs.KindInvalidInput, msg)
}
