// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Russellleung/dashBot/internal/domain/port"
	"github.com/Russellleung/dashBot/pkg/aggtable"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteExporter writes each table into a SQLite database, replacing any
// table of the same name
type SQLiteExporter struct {
	path string
}

// NewSQLiteExporter returns an exporter writing into the database file at path
func NewSQLiteExporter(path string) port.TableExporter {
	return &SQLiteExporter{path: path}
}

// Export implements the TableExporter interface. Tables without any column
// cannot be created in SQLite and are skipped. SQLite identifiers ignore case,
// so table and column names equal up to case get a numeric suffix.
func (e *SQLiteExporter) Export(ctx context.Context, tables aggtable.Tables) error {
	db, err := sql.Open("sqlite3", e.path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database %s: %w", e.path, err)
	}
	defer db.Close()

	kept, names := exportable(ctx, "sqlite", tables, func(s string) string { return s })
	for i, table := range kept {
		if err := writeSQLiteTable(ctx, db, names[i], table); err != nil {
			return fmt.Errorf("failed to write sqlite table %s: %w", table.Name, err)
		}
		slog.DebugContext(ctx, "sqlite table exported",
			"table", names[i],
			"rows", table.Len(),
			"database", e.path,
		)
	}
	return nil
}

func writeSQLiteTable(ctx context.Context, db *sql.DB, tableName string, table aggtable.Table) error {
	columns := table.Columns()
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range uniqueNames(columns, true) {
		quoted[i] = quoteIdent(col)
		placeholders[i] = "?"
	}
	name := quoteIdent(tableName)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return err
	}
	createTable := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(quoted, ", "))
	if _, err := tx.ExecContext(ctx, createTable); err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for i := range table.Rows {
		for j, col := range columns {
			args[j] = table.Cell(i, col)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// quoteIdent quotes a SQL identifier, doubling embedded quotes
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
