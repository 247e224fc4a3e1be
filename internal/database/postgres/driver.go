package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/koustreak/dbinspect/internal/database"
	"github.com/koustreak/dbinspect/internal/errs"
)

// Driver is a PostgreSQL implementation of database.DB over a single
// pgx connection. It is not safe for concurrent use.
type Driver struct {
	conn   *pgx.Conn
	schema string
}

var _ database.DB = (*Driver)(nil)

// New opens one TLS connection described by cfg. Only connection
// establishment is bounded by cfg.ConnectTimeout.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	connCfg, err := parseConfig(cfg)
	if err != nil {
		return nil, errs.Wrap(errs.KindConnectionFailed, "invalid connection settings", err)
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, errs.Wrap(errs.KindConnectionFailed, "connect failed", err)
	}

	schema := cfg.Schema
	if schema == "" {
		schema = database.DefaultSchema
	}
	return &Driver{conn: conn, schema: schema}, nil
}

func (d *Driver) Dialect() database.Dialect { return database.DialectPostgres }

func (d *Driver) Schema() string { return d.schema }

// Close terminates the connection.
func (d *Driver) Close(ctx context.Context) error {
	if err := d.conn.Close(ctx); err != nil {
		return mapError(err, "close failed")
	}
	return nil
}

// Query executes a SQL statement that returns multiple rows.
func (d *Driver) Query(ctx context.Context, sql string, args ...any) (database.Rows, error) {
	rows, err := d.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &pgxRows{rows: rows}, nil
}

// QueryRow executes a SQL statement expected to return at most one row.
// Errors surface from Scan.
func (d *Driver) QueryRow(ctx context.Context, sql string, args ...any) database.Row {
	return &pgxRow{row: d.conn.QueryRow(ctx, sql, args...)}
}

// ServerInfo returns current_database() and version().
func (d *Driver) ServerInfo(ctx context.Context) (*database.ServerInfo, error) {
	var info database.ServerInfo
	err := d.conn.QueryRow(ctx, `SELECT current_database(), version()`).Scan(&info.Database, &info.Version)
	if err != nil {
		return nil, mapError(err, "failed to read server info")
	}
	return &info, nil
}

// Every relation in the schema is listed: views and foreign tables too.
const (
	listTablesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		ORDER BY table_name`

	listColumnsQuery = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name   = $2
		ORDER BY ordinal_position`
)

// ListTables returns the relations of the driver's schema ordered by name.
func (d *Driver) ListTables(ctx context.Context) ([]string, error) {
	return d.fetchStringList(ctx, "failed to list tables", listTablesQuery, d.schema)
}

// ListColumns returns the column names of table in ordinal order.
func (d *Driver) ListColumns(ctx context.Context, table string) ([]string, error) {
	return d.fetchStringList(ctx, "failed to fetch columns", listColumnsQuery, d.schema, table)
}

// fetchStringList is a helper for queries that return a single text column.
func (d *Driver) fetchStringList(ctx context.Context, errMsg, q string, args ...any) ([]string, error) {
	rows, err := d.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, mapError(err, errMsg)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, mapError(err, errMsg)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, errMsg)
	}
	return list, nil
}

// --- pgx type wrappers ---

// pgxRows wraps pgx.Rows to satisfy database.Rows.
type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool { return r.rows.Next() }
func (r *pgxRows) Close()     { r.rows.Close() }

func (r *pgxRows) Scan(dest ...any) error {
	if err := r.rows.Scan(dest...); err != nil {
		return mapError(err, "scan failed")
	}
	return nil
}

func (r *pgxRows) Values() ([]any, error) {
	values, err := r.rows.Values()
	if err != nil {
		return nil, mapError(err, "decode failed")
	}
	return values, nil
}

func (r *pgxRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return mapError(err, "query failed")
	}
	return nil
}

// pgxRow wraps pgx.Row to satisfy database.Row.
type pgxRow struct {
	row pgx.Row
}

func (r *pgxRow) Scan(dest ...any) error {
	return mapError(r.row.Scan(dest...), "query failed")
}
