package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/dbinspect/internal/errs"
)

// PostgreSQL SQLSTATE classes that mean the session itself is unusable.
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgClassConnection    = "08" // connection exception
	pgClassInvalidAuth   = "28" // invalid authorization specification
	pgClassOperatorInter = "57" // operator intervention (admin shutdown, …)
)

// mapError translates pgx / pgconn errors into *errs.Error. It returns nil
// for a nil err.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.KindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.KindQueryFailed, msg, err)
	}

	// Server-side error: classify by SQLSTATE class.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := errs.KindQueryFailed
		if len(pgErr.Code) >= 2 {
			switch pgErr.Code[:2] {
			case pgClassConnection, pgClassInvalidAuth, pgClassOperatorInter:
				kind = errs.KindConnectionFailed
			}
		}
		return errs.Wrap(kind, msg, err)
	}

	// Client-side failure while the connection is open (decode, scan, …).
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return errs.Wrap(errs.KindConnectionFailed, msg, err)
	}
	return errs.Wrap(errs.KindQueryFailed, msg, err)
}
