package database

import "context"

// DB is the contract every driver implements. The inspector talks only to
// this interface; it never imports the postgres or mysql packages.
//
// A DB wraps exactly one connection and is not safe for concurrent use.
type DB interface {
	// Dialect reports the SQL dialect used to build statements.
	Dialect() Dialect

	// Schema returns the namespace used to qualify table names, or "" when
	// tables are addressed unqualified.
	Schema() string

	// Close releases the connection.
	Close(ctx context.Context) error

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a SQL statement that returns at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// ServerInfo returns the current database name and server version.
	ServerInfo(ctx context.Context) (*ServerInfo, error)

	// ListTables returns the base tables of the inspected schema ordered by name.
	ListTables(ctx context.Context) ([]string, error)

	// ListColumns returns the column names of table in ordinal order.
	ListColumns(ctx context.Context, table string) ([]string, error)
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Values returns the current row decoded into Go values.
	Values() ([]any, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Row is an abstraction over a single database row.
type Row interface {
	Scan(dest ...any) error
}

// ServerInfo identifies the database a connection landed on.
type ServerInfo struct {
	Database string
	Version  string
}
