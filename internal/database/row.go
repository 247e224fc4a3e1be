package database

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field is one column of a sample row. Value is already normalised to a
// JSON-safe scalar (see Normalize); nil means SQL NULL.
type Field struct {
	Name  string
	Value any
}

// SampleRow is a row of unknown shape, kept in column order.
type SampleRow []Field

// ZipRow pairs column names with row values by position. When the two
// slices differ in length the extra entries on the longer side are dropped.
func ZipRow(columns []string, values []any) SampleRow {
	n := len(columns)
	if len(values) < n {
		n = len(values)
	}

	row := make(SampleRow, n)
	for i := 0; i < n; i++ {
		row[i] = Field{Name: columns[i], Value: Normalize(values[i])}
	}
	return row
}

// MarshalJSON renders the row as a JSON object preserving column order.
// A repeated column name keeps its first position and its last value.
func (r SampleRow) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any]()
	for _, f := range r {
		om.Set(f.Name, f.Value)
	}
	return json.Marshal(om)
}

// Indented returns the row as two-space indented JSON.
func (r SampleRow) Indented() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errQuery("failed to serialise sample row", err)
	}
	return string(b), nil
}
