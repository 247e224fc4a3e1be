package mysql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/koustreak/dbinspect/internal/errs"
)

// MySQL error numbers that mean the session is unusable.
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errDBAccessDenied  = 1044
	errAccessDenied    = 1045
	errUnknownDatabase = 1049
	errTooManyConns    = 1040
	errUserConnLimit   = 1203
)

// mapError translates go-sql-driver/mysql errors into *errs.Error. It
// returns nil for a nil err.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.KindTimeout, msg, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.KindQueryFailed, msg, err)
	}

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return errs.Wrap(classifyMySQLCode(mysqlErr.Number), msg, err)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, gomysql.ErrInvalidConn) {
		return errs.Wrap(errs.KindConnectionFailed, msg, err)
	}
	return errs.Wrap(errs.KindQueryFailed, msg, err)
}

// classifyMySQLCode maps MySQL error numbers to an errs.Kind.
func classifyMySQLCode(code uint16) errs.Kind {
	switch code {
	case errDBAccessDenied, errAccessDenied, errUnknownDatabase, errTooManyConns, errUserConnLimit:
		return errs.KindConnectionFailed
	default:
		return errs.KindQueryFailed
	}
}
