// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Russellleung/dashBot/internal/domain/port"
	"github.com/Russellleung/dashBot/pkg/aggtable"

	goavro "github.com/linkedin/goavro/v2"
)

// avroCellTypes is the union every column is declared with
var avroCellTypes = []string{"null", "long", "double", "string", "boolean"}

// AvroExporter writes each table as an avro object container file
type AvroExporter struct {
	dir string
}

// NewAvroExporter returns an exporter writing <dir>/<table>.avro files
func NewAvroExporter(dir string) port.TableExporter {
	return &AvroExporter{dir: dir}
}

// Export implements the TableExporter interface. Tables without any column
// are skipped; tables whose file names clash get a numeric suffix.
func (e *AvroExporter) Export(ctx context.Context, tables aggtable.Tables) error {
	kept, files := exportable(ctx, "avro", tables, identifier)
	for i, table := range kept {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := createFile(e.dir, files[i], "avro")
		if err != nil {
			return err
		}
		errWrite := WriteAvro(f, table)
		errClose := f.Close()
		if errWrite != nil {
			return fmt.Errorf("failed to write avro table %s: %w", table.Name, errWrite)
		}
		if errClose != nil {
			return fmt.Errorf("failed to close avro table %s: %w", table.Name, errClose)
		}

		slog.DebugContext(ctx, "avro table exported",
			"table", table.Name,
			"rows", table.Len(),
			"file", f.Name(),
		)
	}
	return nil
}

type avroField struct {
	Name    string   `json:"name"`
	Doc     string   `json:"doc,omitempty"`
	Type    []string `json:"type"`
	Default any      `json:"default"`
}

type avroRecord struct {
	Type   string      `json:"type"`
	Name   string      `json:"name"`
	Fields []avroField `json:"fields"`
}

// avroSchema builds the record schema for table. The original column name is
// kept in each field's doc when it had to be rewritten.
func avroSchema(table aggtable.Table, columns, names []string) (string, error) {
	record := avroRecord{
		Type:   "record",
		Name:   identifier(table.Name),
		Fields: make([]avroField, len(columns)),
	}
	for i, col := range columns {
		field := avroField{Name: names[i], Type: avroCellTypes}
		if col != names[i] {
			field.Doc = col
		}
		record.Fields[i] = field
	}
	b, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteAvro writes one table as an OCF stream to w
func WriteAvro(w io.Writer, table aggtable.Table) error {
	columns := table.Columns()
	names := fieldNames(columns)

	schema, err := avroSchema(table, columns, names)
	if err != nil {
		return fmt.Errorf("failed to build avro schema: %w", err)
	}

	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return fmt.Errorf("failed to compile avro schema: %w", err)
	}

	ocfw, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:     w,
		Codec: codec,
	})
	if err != nil {
		return fmt.Errorf("failed to create avro writer: %w", err)
	}

	records := make([]any, 0, table.Len())
	for i := range table.Rows {
		record := make(map[string]any, len(columns))
		for j, col := range columns {
			record[names[j]] = avroDatum(table.Cell(i, col))
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil
	}
	return ocfw.Append(records)
}

func avroDatum(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int64:
		return goavro.Union("long", t)
	case float64:
		return goavro.Union("double", t)
	case bool:
		return goavro.Union("boolean", t)
	case string:
		return goavro.Union("string", t)
	default:
		text, _ := cellText(t)
		return goavro.Union("string", text)
	}
}
