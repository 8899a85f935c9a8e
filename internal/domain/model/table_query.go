// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"

	"github.com/Russellleung/dashBot/pkg/aggtable"
)

// TableQuery is a saved or ad hoc search whose aggregations are to be tabulated
type TableQuery struct {
	// Name labels the query in logs, e.g. the saved widget name
	Name string `json:"name,omitempty"`
	// Index to search; empty means the searcher's configured index
	Index string `json:"index,omitempty"`
	// Body is the search request body, passed through verbatim
	Body json.RawMessage `json:"query"`
}

// SearchResult holds the raw trees returned by the search backend. Objects
// are *aggtable.Object so that key order survives.
type SearchResult struct {
	// Aggregations is the "aggregations" object, nil when the query had none
	Aggregations any
	// Hits is the "hits" object, nil when absent
	Hits any
	// Total number of matching documents
	Total int64
}

// TableResult is what a query renders to: one table per top-level
// aggregation and, when hits were returned, a documents table
type TableResult struct {
	Tables    aggtable.Tables `json:"tables"`
	Documents *aggtable.Table `json:"documents,omitempty"`
	Total     int64           `json:"total"`
}

// Empty reports whether the result carries no rows at all ("no data")
func (r *TableResult) Empty() bool {
	if r == nil {
		return true
	}
	for _, t := range r.Tables {
		if !t.Empty() {
			return false
		}
	}
	return r.Documents == nil || r.Documents.Empty()
}

// NewSearchResult reads the "aggregations" and "hits" members of a decoded
// search response
func NewSearchResult(response *aggtable.Object) *SearchResult {
	result := &SearchResult{}
	if aggs, ok := response.Get("aggregations"); ok {
		result.Aggregations = aggs
	}
	if hits, ok := response.Get("hits"); ok {
		result.Hits = hits
		result.Total = aggtable.HitsTotal(hits)
	}
	return result
}
