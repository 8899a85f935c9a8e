// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import "encoding/json"

// Config represents OpenSearch configuration
type Config struct {
	URL      string `json:"url"`
	Index    string `json:"index"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Insecure disables TLS certificate verification (self-signed dev clusters)
	Insecure bool `json:"insecure"`
}

// SearchResponse represents the parts of an OpenSearch search response the
// table service reads
type SearchResponse struct {
	Hits         `json:"hits"`
	Aggregations json.RawMessage `json:"aggregations,omitempty"`
}

// Hits represents the hits in the search response
type Hits struct {
	Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total represents the total number of hits
type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation,omitempty"`
}

// Hit represents a single search result hit
type Hit struct {
	ID     string          `json:"_id"`
	Index  string          `json:"_index,omitempty"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// clusterHealthGreen and clusterHealthYellow are the statuses that count as ready
const (
	clusterHealthGreen  = "green"
	clusterHealthYellow = "yellow"
)
