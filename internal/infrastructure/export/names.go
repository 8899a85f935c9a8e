// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Russellleung/dashBot/pkg/aggtable"
)

// fieldNames maps table columns onto identifiers limited to
// [A-Za-z_][A-Za-z0-9_]*, as required by avro and safe for parquet tooling.
// Columns that collide after rewriting get a numeric suffix.
func fieldNames(columns []string) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = identifier(col)
	}
	return uniqueNames(names, false)
}

// uniqueNames suffixes repeated names with _2, _3 and so on. With fold, names
// that differ only in case count as repeats.
func uniqueNames(names []string, fold bool) []string {
	key := func(s string) string {
		if fold {
			return strings.ToLower(s)
		}
		return s
	}

	out := make([]string, len(names))
	used := make(map[string]struct{}, len(names))
	for i, name := range names {
		candidate := name
		for n := 2; ; n++ {
			if _, taken := used[key(candidate)]; !taken {
				break
			}
			candidate = name + "_" + strconv.Itoa(n)
		}
		used[key(candidate)] = struct{}{}
		out[i] = candidate
	}
	return out
}

// exportable drops the tables without columns and pairs the others with
// target names, rewritten by rename and distinct regardless of case
func exportable(ctx context.Context, format string, tables aggtable.Tables, rename func(string) string) ([]aggtable.Table, []string) {
	kept := make([]aggtable.Table, 0, len(tables))
	names := make([]string, 0, len(tables))
	for _, table := range tables {
		if len(table.Columns()) == 0 {
			slog.DebugContext(ctx, "skipping export of table without columns",
				"format", format,
				"table", table.Name,
			)
			continue
		}
		kept = append(kept, table)
		names = append(names, rename(table.Name))
	}
	return kept, uniqueNames(names, true)
}

func identifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// createFile opens dir/<base>.<ext> for writing, creating dir if needed
func createFile(dir, base, ext string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, base+"."+ext)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// cellText renders a cell for text-only formats; nil stays nil
func cellText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}
