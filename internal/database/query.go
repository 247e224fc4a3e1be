package database

import (
	"fmt"
	"strings"
)

// Dialect controls placeholder and identifier-quoting style.
type Dialect int

const (
	// DialectPostgres uses $1, $2, … placeholders and "double-quoted" identifiers.
	DialectPostgres Dialect = iota

	// DialectMySQL uses ? placeholders and `backtick` identifiers.
	DialectMySQL
)

// SelectBuilder constructs the read-only statements the inspector issues.
// Identifiers are always quoted; values are never interpolated.
//
// Usage:
//
//	sql, args, err := Select("orders", DialectPostgres).
//	    Schema("public").
//	    Limit(1).
//	    Build()
//	// SELECT * FROM "public"."orders" LIMIT $1   [1]
type SelectBuilder struct {
	table   string
	schema  string
	dialect Dialect
	count   bool
	limit   *int
}

// Select starts a new SelectBuilder for the given table and dialect.
func Select(table string, d Dialect) *SelectBuilder {
	return &SelectBuilder{table: table, dialect: d}
}

// Schema qualifies the table with schema. An empty schema leaves it unqualified.
func (b *SelectBuilder) Schema(schema string) *SelectBuilder {
	b.schema = schema
	return b
}

// Count turns the statement into SELECT COUNT(*).
func (b *SelectBuilder) Count() *SelectBuilder {
	b.count = true
	return b
}

// Limit sets the maximum number of rows to return.
// No ORDER BY is ever added, so which rows come back is up to the engine.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Build produces the final SQL string and argument slice.
func (b *SelectBuilder) Build() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errInvalidInput("table name is required")
	}
	if b.limit != nil && *b.limit < 0 {
		return "", nil, errInvalidInput(fmt.Sprintf("invalid limit: %d", *b.limit))
	}

	cols := "*"
	if b.count {
		cols = "COUNT(*)"
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	if b.schema != "" {
		sb.WriteString(b.quoteIdent(b.schema))
		sb.WriteByte('.')
	}
	sb.WriteString(b.quoteIdent(b.table))

	var args []any
	if b.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.placeholder(len(args) + 1))
		args = append(args, *b.limit)
	}

	return sb.String(), args, nil
}

// placeholder returns the correct parameter placeholder for the dialect.
// Postgres: $1, $2, …   MySQL: ? (index is ignored)
func (b *SelectBuilder) placeholder(idx int) string {
	if b.dialect == DialectMySQL {
		return "?"
	}
	return fmt.Sprintf("$%d", idx)
}

// quoteIdent quotes name for the builder's dialect, doubling any embedded
// quote character.
func (b *SelectBuilder) quoteIdent(name string) string {
	if b.dialect == DialectMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
