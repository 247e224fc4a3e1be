package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbinspect/internal/errs"
)

func TestSelectBuilder_Build(t *testing.T) {
	tests := []struct {
		name     string
		builder  *SelectBuilder
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "postgres count qualified",
			builder: Select("users", DialectPostgres).Schema("public").Count(),
			wantSQL: `SELECT COUNT(*) FROM "public"."users"`,
		},
		{
			name:     "postgres sample unqualified",
			builder:  Select("orders", DialectPostgres).Limit(1),
			wantSQL:  `SELECT * FROM "orders" LIMIT $1`,
			wantArgs: []any{1},
		},
		{
			name:     "mysql sample",
			builder:  Select("products", DialectMySQL).Limit(1),
			wantSQL:  "SELECT * FROM `products` LIMIT ?",
			wantArgs: []any{1},
		},
		{
			name:    "mysql count",
			builder: Select("categories", DialectMySQL).Count(),
			wantSQL: "SELECT COUNT(*) FROM `categories`",
		},
		{
			name:    "mixed case is preserved",
			builder: Select("Users", DialectPostgres).Schema("public").Count(),
			wantSQL: `SELECT COUNT(*) FROM "public"."Users"`,
		},
		{
			name:    "embedded quotes are doubled",
			builder: Select(`we"ird`, DialectPostgres).Count(),
			wantSQL: `SELECT COUNT(*) FROM "we""ird"`,
		},
		{
			name:    "embedded backticks are doubled",
			builder: Select("we`ird", DialectMySQL).Count(),
			wantSQL: "SELECT COUNT(*) FROM `we``ird`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSelectBuilder_NoOrderBy(t *testing.T) {
	sql, _, err := Select("users", DialectPostgres).Limit(1).Build()
	require.NoError(t, err)
	assert.NotContains(t, sql, "ORDER BY")
}

func TestSelectBuilder_InvalidInput(t *testing.T) {
	_, _, err := Select("  ", DialectPostgres).Count().Build()
	assert.True(t, errs.KindOf(err) == errs.KindInvalidInput)

	_, _, err = Select("users", DialectPostgres).Limit(-1).Build()
	assert.True(t, errs.KindOf(err) == errs.KindInvalidInput)
}
