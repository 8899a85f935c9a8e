// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggtable

import (
	"bytes"
	"encoding/json"
)

// Row maps column names to scalar cells (int64, float64, string, bool or
// nil). A Row is never modified after it is built; With returns a copy.
type Row struct {
	columns []string
	cells   map[string]any
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{}
}

// With returns a copy of r with column set to value. Overwriting an existing
// column keeps that column's position.
func (r Row) With(column string, value any) Row {
	out := Row{
		columns: r.columns,
		cells:   make(map[string]any, len(r.cells)+1),
	}
	for k, v := range r.cells {
		out.cells[k] = v
	}
	if _, ok := r.cells[column]; !ok {
		out.columns = make([]string, len(r.columns), len(r.columns)+1)
		copy(out.columns, r.columns)
		out.columns = append(out.columns, column)
	}
	out.cells[column] = value
	return out
}

// Get returns the cell stored under column.
func (r Row) Get(column string) (any, bool) {
	v, ok := r.cells[column]
	return v, ok
}

// Columns returns the column names in insertion order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns.
func (r Row) Len() int {
	return len(r.columns)
}

// IsEmpty reports whether the row has no columns at all.
func (r Row) IsEmpty() bool {
	return len(r.columns) == 0
}

// Map returns a fresh map holding the row's cells.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.cells))
	for k, v := range r.cells {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the row as an object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.cells[col])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
