// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package design

import (
	. "goa.design/goa/v3/dsl"
)

var TableQuery = Type("TableQuery", func() {
	Description("A saved or ad hoc search whose aggregations are tabulated.")

	Attribute("name", String, "Label for the query in logs", func() {
		Example("cars by make")
	})
	Attribute("index", String, "Index to search; empty means the configured index", func() {
		Example("cars")
	})
	Attribute("query", Any, "Search request body, passed through verbatim", func() {
		Example(map[string]any{
			"size": 0,
			"aggs": map[string]any{
				"by_make": map[string]any{"terms": map[string]any{"field": "make"}},
			},
		})
	})
	Required("query")
})

var Table = Type("Table", func() {
	Description("Rows flattened from one aggregation; columns are the union of row keys in first-seen order.")

	Attribute("name", String, "Top-level aggregation name", func() {
		Example("by_make")
	})
	Attribute("columns", ArrayOf(String), "Column names", func() {
		Example([]string{"by_make", "by_make_count"})
	})
	Attribute("rows", ArrayOf(MapOf(String, Any)), "Rows keyed by column; missing cells are null")
	Required("name", "columns", "rows")
})

var TableResult = Type("TableResult", func() {
	Attribute("tables", ArrayOf(Table), "One table per top-level aggregation")
	Attribute("documents", Table, "Search hits as rows of their _source fields")
	Attribute("total", Int64, "Number of matching documents", func() {
		Example(3)
	})
	Required("tables", "total")
})

var BadRequestError = Type("BadRequestError", func() {
	Attribute("message", String, "Error message", func() {
		Example("query body must be a JSON object")
	})
	Attribute("request_id", String, "Request ID", func() {
		Example("7f1c0a52-0d1e-4c55-9a57-2b9e4b7f3a10")
	})
	Required("message")
})

var InternalServerError = Type("InternalServerError", func() {
	Attribute("message", String, "Error message", func() {
		Example("failed to assemble tables")
	})
	Attribute("request_id", String, "Request ID")
	Required("message")
})

var ServiceUnavailableError = Type("ServiceUnavailableError", func() {
	Attribute("message", String, "Error message", func() {
		Example("search operation failed")
	})
	Attribute("request_id", String, "Request ID")
	Required("message")
})
