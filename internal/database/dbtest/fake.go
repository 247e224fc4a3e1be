// Package dbtest provides an in-memory database.DB for tests.
//
// The fake understands exactly the statements produced by
// database.SelectBuilder plus the catalog calls on the DB interface. Every
// call is recorded in Calls as "<op>" or "<op>:<table>" so tests can assert
// which queries were (or were not) issued.
package dbtest

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/koustreak/dbinspect/internal/database"
	"github.com/koustreak/dbinspect/internal/errs"
)

// Table is the content of one fake table.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Fake implements database.DB over a map of tables.
type Fake struct {
	Tables map[string]*Table

	// Info is returned by ServerInfo; nil makes ServerInfo fail.
	Info *database.ServerInfo

	// Fail forces an error for a call key such as "tables" or "count:orders".
	Fail map[string]error

	// SchemaName is returned by Schema; defaults to "public".
	SchemaName string

	Calls  []string
	Closed bool
}

// New returns a Fake holding tables.
func New(tables map[string]*Table) *Fake {
	return &Fake{
		Tables: tables,
		Info:   &database.ServerInfo{Database: "defaultdb", Version: "PostgreSQL 16.4"},
		Fail:   map[string]error{},
	}
}

var _ database.DB = (*Fake)(nil)

func (f *Fake) Dialect() database.Dialect { return database.DialectPostgres }

func (f *Fake) Schema() string {
	if f.SchemaName == "" {
		return database.DefaultSchema
	}
	return f.SchemaName
}

func (f *Fake) Close(context.Context) error {
	f.Closed = true
	return f.call("close")
}

func (f *Fake) ServerInfo(context.Context) (*database.ServerInfo, error) {
	if err := f.call("info"); err != nil {
		return nil, err
	}
	if f.Info == nil {
		return nil, errs.New(errs.KindQueryFailed, "server info unavailable")
	}
	return f.Info, nil
}

func (f *Fake) ListTables(context.Context) ([]string, error) {
	if err := f.call("tables"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.Tables))
	for name := range f.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *Fake) ListColumns(_ context.Context, table string) ([]string, error) {
	if err := f.call("columns:" + table); err != nil {
		return nil, err
	}
	t, ok := f.Tables[table]
	if !ok {
		return nil, nil
	}
	return t.Columns, nil
}

var fromRe = regexp.MustCompile(`FROM (?:"(?:[^"]|"")+"\.)?"((?:[^"]|"")+)"`)

func (f *Fake) Query(_ context.Context, sql string, args ...any) (database.Rows, error) {
	table, err := f.parse(sql)
	if err != nil {
		return nil, err
	}
	if err := f.call("sample:" + table); err != nil {
		return nil, err
	}
	t, err := f.lookup(table)
	if err != nil {
		return nil, err
	}

	rows := t.Rows
	if len(args) == 1 {
		if n, ok := args[0].(int); ok && n < len(rows) {
			rows = rows[:n]
		}
	}
	return &rowSet{rows: rows, pos: -1}, nil
}

func (f *Fake) QueryRow(_ context.Context, sql string, _ ...any) database.Row {
	table, err := f.parse(sql)
	if err != nil {
		return errRow{err}
	}
	if !strings.HasPrefix(sql, "SELECT COUNT(*)") {
		return errRow{fmt.Errorf("dbtest: unsupported single-row statement %q", sql)}
	}
	if err := f.call("count:" + table); err != nil {
		return errRow{err}
	}
	t, err := f.lookup(table)
	if err != nil {
		return errRow{err}
	}
	return countRow{n: int64(len(t.Rows))}
}

// Count returns how many times key was called.
func (f *Fake) Count(key string) int {
	n := 0
	for _, c := range f.Calls {
		if c == key {
			n++
		}
	}
	return n
}

func (f *Fake) call(key string) error {
	f.Calls = append(f.Calls, key)
	return f.Fail[key]
}

func (f *Fake) parse(sql string) (string, error) {
	m := fromRe.FindStringSubmatch(sql)
	if m == nil {
		return "", fmt.Errorf("dbtest: cannot find table in %q", sql)
	}
	return strings.ReplaceAll(m[1], `""`, `"`), nil
}

func (f *Fake) lookup(table string) (*Table, error) {
	t, ok := f.Tables[table]
	if !ok {
		return nil, errs.Wrap(errs.KindQueryFailed, "query failed",
			fmt.Errorf("relation %q does not exist", table))
	}
	return t, nil
}

type rowSet struct {
	rows [][]any
	pos  int
}

func (r *rowSet) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *rowSet) Scan(dest ...any) error {
	if len(dest) != len(r.rows[r.pos]) {
		return fmt.Errorf("dbtest: scan %d values into %d targets", len(r.rows[r.pos]), len(dest))
	}
	for i, v := range r.rows[r.pos] {
		p, ok := dest[i].(*any)
		if !ok {
			return fmt.Errorf("dbtest: unsupported scan target %T", dest[i])
		}
		*p = v
	}
	return nil
}

func (r *rowSet) Values() ([]any, error) {
	out := make([]any, len(r.rows[r.pos]))
	copy(out, r.rows[r.pos])
	return out, nil
}

func (r *rowSet) Close()     {}
func (r *rowSet) Err() error { return nil }

type countRow struct{ n int64 }

func (r countRow) Scan(dest ...any) error {
	if len(dest) != 1 {
		return fmt.Errorf("dbtest: count scans into one target, got %d", len(dest))
	}
	p, ok := dest[0].(*int64)
	if !ok {
		return fmt.Errorf("dbtest: count target must be *int64, got %T", dest[0])
	}
	*p = r.n
	return nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
