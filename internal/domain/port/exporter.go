// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/Russellleung/dashBot/pkg/aggtable"
)

// TableExporter writes assembled tables to some durable format (avro,
// parquet, sqlite)
type TableExporter interface {
	// Export writes every table that has at least one column
	Export(ctx context.Context, tables aggtable.Tables) error
}
