// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Russellleung/dashBot/internal/domain/port"
	"github.com/Russellleung/dashBot/pkg/aggtable"

	parquet "github.com/parquet-go/parquet-go"
)

// ParquetExporter writes each table as a parquet file of optional string
// columns
type ParquetExporter struct {
	dir string
}

// NewParquetExporter returns an exporter writing <dir>/<table>.parquet files
func NewParquetExporter(dir string) port.TableExporter {
	return &ParquetExporter{dir: dir}
}

// Export implements the TableExporter interface. Tables without any column
// have no parquet schema and are skipped; tables whose file names clash get
// a numeric suffix.
func (e *ParquetExporter) Export(ctx context.Context, tables aggtable.Tables) error {
	kept, files := exportable(ctx, "parquet", tables, identifier)
	for i, table := range kept {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := createFile(e.dir, files[i], "parquet")
		if err != nil {
			return err
		}
		errWrite := WriteParquet(f, table)
		errClose := f.Close()
		if errWrite != nil {
			return fmt.Errorf("failed to write parquet table %s: %w", table.Name, errWrite)
		}
		if errClose != nil {
			return fmt.Errorf("failed to close parquet table %s: %w", table.Name, errClose)
		}

		slog.DebugContext(ctx, "parquet table exported",
			"table", table.Name,
			"rows", table.Len(),
			"file", f.Name(),
		)
	}
	return nil
}

// WriteParquet writes one table to w. Cells are stored as text; nil cells
// are parquet nulls.
func WriteParquet(w io.Writer, table aggtable.Table) error {
	columns := table.Columns()
	if len(columns) == 0 {
		return fmt.Errorf("table %s has no columns", table.Name)
	}
	names := fieldNames(columns)

	group := parquet.Group{}
	for _, name := range names {
		group[name] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema(identifier(table.Name), group)

	// leaf order is decided by the schema, not by our column order
	leaf := make(map[string]int, len(names))
	for i, path := range schema.Columns() {
		leaf[path[len(path)-1]] = i
	}

	rows := make([]parquet.Row, 0, table.Len())
	for i := range table.Rows {
		row := make(parquet.Row, len(names))
		for j, col := range columns {
			idx := leaf[names[j]]
			text, ok := cellText(table.Cell(i, col))
			if !ok {
				row[idx] = parquet.NullValue().Level(0, 0, idx)
				continue
			}
			row[idx] = parquet.ValueOf(text).Level(0, 1, idx)
		}
		rows = append(rows, row)
	}

	pw := parquet.NewWriter(w, schema)
	if _, err := pw.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	return pw.Close()
}
