// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggtable

import (
	"bytes"
	"context"
	"encoding/json"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DocumentsTableName is the name given to the table projected from raw hits.
const DocumentsTableName = "hits"

// Table is the flattened form of one top-level aggregation. Rows may carry
// different column sets; a missing cell reads as nil.
type Table struct {
	Name string
	Rows []Row
}

// Columns returns the union of the rows' columns in first-seen order.
func (t Table) Columns() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.Rows {
		for _, col := range r.columns {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			out = append(out, col)
		}
	}
	return out
}

// Cell returns row i's value for column, nil when the row lacks it.
func (t Table) Cell(i int, column string) any {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	v, _ := t.Rows[i].Get(column)
	return v
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no rows ("no data").
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// MarshalJSON writes name, columns and rows; every row carries every column,
// nil where the row had no value.
func (t Table) MarshalJSON() ([]byte, error) {
	columns := t.Columns()
	if columns == nil {
		columns = []string{}
	}

	var rows bytes.Buffer
	rows.WriteByte('[')
	for i := range t.Rows {
		if i > 0 {
			rows.WriteByte(',')
		}
		full := Row{columns: columns, cells: make(map[string]any, len(columns))}
		for _, col := range columns {
			full.cells[col] = t.Cell(i, col)
		}
		b, err := full.MarshalJSON()
		if err != nil {
			return nil, err
		}
		rows.Write(b)
	}
	rows.WriteByte(']')

	return json.Marshal(struct {
		Name    string          `json:"name"`
		Columns []string        `json:"columns"`
		Rows    json.RawMessage `json:"rows"`
	}{
		Name:    t.Name,
		Columns: columns,
		Rows:    rows.Bytes(),
	})
}

// Tables holds one table per top-level aggregation, in input order.
type Tables []Table

// Lookup finds a table by aggregation name. ok is false only when the
// aggregation was absent; an aggregation that produced no rows is found,
// empty.
func (ts Tables) Lookup(name string) (Table, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Names returns the table names in order.
func (ts Tables) Names() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

// Assembler builds tables from an aggregations object.
type Assembler struct {
	Flattener
	// MaxDepth is the deepest zero-based level classified; zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// Assemble flattens aggs with the default Assembler.
func Assemble(aggs any) Tables {
	return Assembler{}.Assemble(aggs)
}

// Assemble flattens each top-level aggregation of aggs, one after another.
// Anything other than an object yields no tables.
func (a Assembler) Assemble(aggs any) Tables {
	fields, ok := objectFields(aggs)
	if !ok {
		return Tables{}
	}
	out := make(Tables, len(fields))
	for i, f := range fields {
		out[i] = a.table(f)
	}
	return out
}

// AssembleContext is Assemble with top-level aggregations flattened
// concurrently. Output order matches Assemble.
func (a Assembler) AssembleContext(ctx context.Context, aggs any) (Tables, error) {
	fields, ok := objectFields(aggs)
	if !ok {
		return Tables{}, ctx.Err()
	}

	out := make(Tables, len(fields))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range fields {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = a.table(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a Assembler) table(f Field) Table {
	maxDepth := a.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	node := ClassifyLimit(f.Value, maxDepth)
	return Table{
		Name: f.Name,
		Rows: a.Flatten(node, Path{f.Name}, NewRow()),
	}
}

// DocumentsTable projects a search response's hits into one row per
// document, the document's _source fields as columns. hits may be the "hits"
// object of a response or its inner list. ok is false when there is no hit
// list at all.
func DocumentsTable(hits any) (Table, bool) {
	list, ok := hits.([]any)
	if !ok {
		inner, found := lookup(hits, "hits")
		if !found {
			return Table{}, false
		}
		if list, ok = inner.([]any); !ok {
			return Table{}, false
		}
	}

	t := Table{Name: DocumentsTableName, Rows: make([]Row, 0, len(list))}
	for _, hit := range list {
		source, found := lookup(hit, "_source")
		if !found {
			continue
		}
		fields, isObject := objectFields(source)
		if !isObject {
			continue
		}
		row := NewRow()
		for _, f := range fields {
			row = row.With(f.Name, scalar(f.Value))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, true
}

// HitsTotal reads hits.total, either {"value": n} or a bare number.
func HitsTotal(hits any) int64 {
	total, ok := lookup(hits, "total")
	if !ok {
		return 0
	}
	if value, found := lookup(total, "value"); found {
		return integer(value)
	}
	return integer(total)
}

func lookup(v any, name string) (any, bool) {
	switch o := v.(type) {
	case *Object:
		return o.Get(name)
	case map[string]any:
		value, ok := o[name]
		return value, ok
	default:
		return nil, false
	}
}
