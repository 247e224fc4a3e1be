// Package errs provides the error type shared by every dbinspect package.
//
// Drivers translate their native errors into *errs.Error once, at the driver
// boundary. The inspector then decides what is fatal for the run and what is
// isolated to a single table by checking the kind:
//
//	if errs.IsConnectionFailed(err) {
//	    // stop the run
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises an error without exposing driver-specific codes.
type Kind int

const (
	KindUnknown          Kind = iota
	KindConfigMissing         // a required setting is absent
	KindConnectionFailed      // cannot reach, authenticate to, or negotiate TLS with the database
	KindQueryFailed           // a statement failed; Table names the table when known
	KindTimeout               // context deadline or cancellation
	KindInvalidInput          // caller passed bad arguments
)

func (k Kind) String() string {
	switch k {
	case KindConfigMissing:
		return "config_missing"
	case KindConnectionFailed:
		return "connection_failed"
	case KindQueryFailed:
		return "query_failed"
	case KindTimeout:
		return "timeout"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is the single error type returned across dbinspect.
type Error struct {
	Kind    Kind
	Message string
	Table   string // set for per-table query failures
	Cause   error  // original driver-level error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// ConfigMissing reports that the named setting was not provided.
func ConfigMissing(setting string) *Error {
	return &Error{Kind: KindConfigMissing, Message: setting + " not found"}
}

// ForTable tags err with the table it concerns. Errors that are not
// *Error are wrapped as KindQueryFailed.
func ForTable(table string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		tagged := *e
		tagged.Table = table
		return &tagged
	}
	return &Error{Kind: KindQueryFailed, Message: "query on " + table + " failed", Table: table, Cause: err}
}

// --- Predicates ---

// IsConfigMissing reports whether err is a missing-configuration error.
func IsConfigMissing(err error) bool {
	return KindOf(err) == KindConfigMissing
}

// IsConnectionFailed reports whether err is a connectivity, TLS or auth failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == KindConnectionFailed
}

// IsQueryFailed reports whether err is a statement execution error.
func IsQueryFailed(err error) bool {
	return KindOf(err) == KindQueryFailed
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}

// KindOf extracts the Kind from any error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// TableOf returns the table recorded on err, or "" if none.
func TableOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Table
	}
	return ""
}
