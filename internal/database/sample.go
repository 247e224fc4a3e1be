package database

import "context"

// CountRows returns SELECT COUNT(*) for table. Shared by all drivers.
func CountRows(ctx context.Context, db DB, table string) (int64, error) {
	q, args, err := Select(table, db.Dialect()).Schema(db.Schema()).Count().Build()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// FetchSample returns one arbitrary row of table with its columns named from
// the catalog. It returns (nil, nil) when the table turned out to be empty.
//
// The row is read and its result set closed before the catalog is queried:
// a single connection cannot run two statements at once.
func FetchSample(ctx context.Context, db DB, table string) (SampleRow, error) {
	q, args, err := Select(table, db.Dialect()).Schema(db.Schema()).Limit(1).Build()
	if err != nil {
		return nil, err
	}

	values, err := firstRowValues(ctx, db, q, args)
	if err != nil || values == nil {
		return nil, err
	}

	columns, err := db.ListColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	return ZipRow(columns, values), nil
}

func firstRowValues(ctx context.Context, db DB, q string, args []any) ([]any, error) {
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	values, err := rows.Values()
	if err != nil {
		return nil, errQuery("failed to read sample row", err)
	}
	return values, nil
}
