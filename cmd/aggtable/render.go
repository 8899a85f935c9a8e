// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Russellleung/dashBot/internal/domain/model"
	"github.com/Russellleung/dashBot/pkg/aggtable"
)

const noData = "(no data)"

func writeJSON(w io.Writer, result *model.TableResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeText(w io.Writer, result *model.TableResult) error {
	tables := result.Tables
	if result.Documents != nil {
		tables = append(append(aggtable.Tables{}, tables...), *result.Documents)
	}
	for i, table := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeTable(w, table); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, table aggtable.Table) error {
	if _, err := fmt.Fprintf(w, "%s (%d rows)\n", table.Name, table.Len()); err != nil {
		return err
	}
	if table.Empty() {
		_, err := fmt.Fprintln(w, noData)
		return err
	}

	columns := table.Columns()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))

	cells := make([]string, len(columns))
	for i := range table.Rows {
		for j, col := range columns {
			cells[j] = formatCell(table.Cell(i, col))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
