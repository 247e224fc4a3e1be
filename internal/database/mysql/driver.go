package mysql

import (
	"context"
	"database/sql"

	"github.com/koustreak/dbinspect/internal/database"
	"github.com/koustreak/dbinspect/internal/errs"
)

// Driver is a MySQL implementation of database.DB pinned to one
// connection taken from database/sql. It is not safe for concurrent use.
type Driver struct {
	db   *sql.DB
	conn *sql.Conn
}

var _ database.DB = (*Driver)(nil)

// New opens one TLS connection described by cfg and pings it. Only this
// step is bounded by cfg.ConnectTimeout (the driver's dial timeout).
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.KindConnectionFailed, "invalid connection settings", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = database.DefaultConnectTimeout
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := db.Conn(connectCtx)
	if err == nil {
		err = conn.PingContext(connectCtx)
	}
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		_ = db.Close()
		return nil, errs.Wrap(errs.KindConnectionFailed, "connect failed", err)
	}

	return &Driver{db: db, conn: conn}, nil
}

func (d *Driver) Dialect() database.Dialect { return database.DialectMySQL }

// Schema is empty: tables are addressed relative to the connected database.
func (d *Driver) Schema() string { return "" }

// Close returns the connection and closes the handle.
func (d *Driver) Close(_ context.Context) error {
	connErr := d.conn.Close()
	if err := d.db.Close(); err != nil {
		return mapError(err, "close failed")
	}
	return mapError(connErr, "close failed")
}

func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &mysqlRows{rows: rows}, nil
}

func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return &mysqlRow{row: d.conn.QueryRowContext(ctx, query, args...)}
}

// ServerInfo returns DATABASE() and VERSION().
func (d *Driver) ServerInfo(ctx context.Context) (*database.ServerInfo, error) {
	var name sql.NullString
	var info database.ServerInfo
	if err := d.conn.QueryRowContext(ctx, `SELECT DATABASE(), VERSION()`).Scan(&name, &info.Version); err != nil {
		return nil, mapError(err, "failed to read server info")
	}
	info.Database = name.String
	info.Version = "MySQL " + info.Version
	return &info, nil
}

const (
	listTablesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		ORDER BY table_name`

	listColumnsQuery = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name   = ?
		ORDER BY ordinal_position`
)

// ListTables includes views alongside base tables.
func (d *Driver) ListTables(ctx context.Context) ([]string, error) {
	return d.fetchStringList(ctx, "failed to list tables", listTablesQuery)
}

func (d *Driver) ListColumns(ctx context.Context, table string) ([]string, error) {
	return d.fetchStringList(ctx, "failed to fetch columns", listColumnsQuery, table)
}

func (d *Driver) fetchStringList(ctx context.Context, errMsg, q string, args ...any) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, q, args...)
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

// --- sql type wrappers ---

type mysqlRows struct {
	rows *sql.Rows
}

func (r *mysqlRows) Next() bool { return r.rows.Next() }
func (r *mysqlRows) Close()     { _ = r.rows.Close() }
func (r *mysqlRows) Err() error { return mapError(r.rows.Err(), "query failed") }

func (r *mysqlRows) Scan(dest ...any) error {
	return mapError(r.rows.Scan(dest...), "scan failed")
}

// Values scans the current row into *any targets so the driver can write
// whatever type it decoded.
func (r *mysqlRows) Values() ([]any, error) {
	columns, err := r.rows.Columns()
	if err != nil {
		return nil, mapError(err, "failed to read column names")
	}

	dest := make([]any, len(columns))
	destPtrs := make([]any, len(columns))
	for i := range dest {
		destPtrs[i] = &dest[i]
	}
	if err := r.rows.Scan(destPtrs...); err != nil {
		return nil, mapError(err, "failed to scan row")
	}
	return dest, nil
}

type mysqlRow struct {
	row *sql.Row
}

func (r *mysqlRow) Scan(dest ...any) error {
	return mapError(r.row.Scan(dest...), "query failed")
}
