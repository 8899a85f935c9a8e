// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Russellleung/dashBot/internal/domain/model"
	"github.com/Russellleung/dashBot/pkg/aggtable"
)

// sampleResponse mirrors what a cars index answers to a dashboard query with
// nested terms, a keyed filters aggregation, a metric and percentiles
const sampleResponse = `{
	"hits": {
		"total": {"value": 3, "relation": "eq"},
		"hits": [
			{"_id": "1", "_source": {"make": "tesla", "model": "model 3", "price": 42000, "electric": true}},
			{"_id": "2", "_source": {"make": "bmw", "model": "i4", "price": 56000, "electric": true}},
			{"_id": "3", "_source": {"make": "bmw", "model": "320d", "price": 39000, "electric": false, "mileage": 12000}}
		]
	},
	"aggregations": {
		"by_make": {
			"doc_count_error_upper_bound": 0,
			"sum_other_doc_count": 0,
			"buckets": [
				{
					"key": "bmw",
					"doc_count": 2,
					"avg_price": {"value": 47500.0},
					"by_model": {"buckets": [
						{"key": "i4", "doc_count": 1},
						{"key": "320d", "doc_count": 1}
					]}
				},
				{
					"key": "tesla",
					"doc_count": 1,
					"avg_price": {"value": 42000.0},
					"by_model": {"buckets": [
						{"key": "model 3", "doc_count": 1}
					]}
				}
			]
		},
		"fuel": {
			"buckets": {
				"electric": {"doc_count": 2},
				"combustion": {"doc_count": 1}
			}
		},
		"avg_price": {"value": 45666.67},
		"price_percentiles": {"values": {"50.0": 42000.0, "95.0": 56000.0}}
	}
}`

// MockSearcher is a mock implementation of AggregationSearcher for testing
// This demonstrates how the clean architecture allows easy swapping of implementations
type MockSearcher struct {
	mu          sync.Mutex
	response    *model.SearchResult
	searchError error
	readyError  error
	queries     []model.TableQuery
}

// NewMockSearcher creates a new mock searcher answering with the sample cars response
func NewMockSearcher() *MockSearcher {
	response, err := ParseResponse([]byte(sampleResponse))
	if err != nil {
		panic(fmt.Sprintf("invalid sample response: %v", err))
	}
	return &MockSearcher{response: response}
}

// ParseResponse turns a raw search response document into a SearchResult
func ParseResponse(data []byte) (*model.SearchResult, error) {
	decoded, err := aggtable.Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := decoded.(*aggtable.Object)
	if !ok {
		return nil, fmt.Errorf("search response must be a JSON object")
	}

	return model.NewSearchResult(obj), nil
}

// Search implements the AggregationSearcher interface
func (m *MockSearcher) Search(ctx context.Context, query model.TableQuery) (*model.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slog.DebugContext(ctx, "mock search", "name", query.Name, "index", query.Index)

	m.queries = append(m.queries, query)
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.response, nil
}

// IsReady implements the AggregationSearcher interface
func (m *MockSearcher) IsReady(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readyError
}

// SetResponse replaces the canned response
func (m *MockSearcher) SetResponse(response *model.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
}

// SetSearchError makes every Search call fail with err
func (m *MockSearcher) SetSearchError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchError = err
}

// SetReadyError makes IsReady fail with err
func (m *MockSearcher) SetReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readyError = err
}

// Queries returns the queries received so far
func (m *MockSearcher) Queries() []model.TableQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TableQuery, len(m.queries))
	copy(out, m.queries)
	return out
}
