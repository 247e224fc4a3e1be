package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/koustreak/dbinspect/internal/errs"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"undefined table", &pgconn.PgError{Code: "42P01", Message: `relation "stores" does not exist`}, errs.KindQueryFailed},
		{"insufficient privilege", &pgconn.PgError{Code: "42501", Message: "permission denied"}, errs.KindQueryFailed},
		{"connection failure", &pgconn.PgError{Code: "08006"}, errs.KindConnectionFailed},
		{"bad password", &pgconn.PgError{Code: "28P01"}, errs.KindConnectionFailed},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, errs.KindConnectionFailed},
		{"deadline", fmt.Errorf("read: %w", context.DeadlineExceeded), errs.KindTimeout},
		{"no rows", pgx.ErrNoRows, errs.KindQueryFailed},
		{"client side", errors.New("cannot scan NULL into *int64"), errs.KindQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "query failed")
			assert.Equal(t, tt.want, errs.KindOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, mapError(nil, "unused"))
}

func TestMapError_KeepsServerMessage(t *testing.T) {
	err := mapError(&pgconn.PgError{Severity: "ERROR", Code: "42P01", Message: `relation "stores" does not exist`}, "query failed")

	assert.Contains(t, err.Error(), `relation "stores" does not exist`)
}
