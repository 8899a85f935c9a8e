// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// DefaultIndex is searched when neither the request nor OPENSEARCH_INDEX names one
	DefaultIndex = "dashboard"

	// DefaultSearchSize is the hit count applied when a query body sets no "size"
	DefaultSearchSize = 50

	// ExportFormatText and friends name the CLI output formats
	ExportFormatText    = "text"
	ExportFormatJSON    = "json"
	ExportFormatAvro    = "avro"
	ExportFormatParquet = "parquet"
	ExportFormatSQLite  = "sqlite"
)
