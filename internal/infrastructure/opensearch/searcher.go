// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Russellleung/dashBot/internal/domain/model"
	"github.com/Russellleung/dashBot/internal/domain/port"
	"github.com/Russellleung/dashBot/pkg/aggtable"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// OpenSearchSearcher implements the AggregationSearcher interface for OpenSearch
type OpenSearchSearcher struct {
	client OpenSearchClientRetriever
	index  string
}

// OpenSearchClientRetriever defines the interface for OpenSearch operations
// This allows for easy mocking and testing
type OpenSearchClientRetriever interface {
	Search(ctx context.Context, index string, query []byte) (*SearchResponse, error)
	IsReady(ctx context.Context) error
}

// Search implements the AggregationSearcher interface
func (os *OpenSearchSearcher) Search(ctx context.Context, query model.TableQuery) (*model.SearchResult, error) {
	index := query.Index
	if index == "" {
		index = os.index
	}

	slog.DebugContext(ctx, "executing opensearch aggregation query",
		"name", query.Name,
		"index", index,
	)

	response, err := os.client.Search(ctx, index, query.Body)
	if err != nil {
		return nil, fmt.Errorf("opensearch search failed: %w", err)
	}

	result, err := os.convertResponse(ctx, response)
	if err != nil {
		return nil, fmt.Errorf("failed to convert search response: %w", err)
	}

	slog.DebugContext(ctx, "opensearch aggregation query completed",
		"total", result.Total,
		"has_aggregations", result.Aggregations != nil,
	)
	return result, nil
}

// IsReady implements the AggregationSearcher interface
func (os *OpenSearchSearcher) IsReady(ctx context.Context) error {
	return os.client.IsReady(ctx)
}

// convertResponse decodes the aggregation tree and rebuilds the hits object
// with order-preserving objects
func (os *OpenSearchSearcher) convertResponse(ctx context.Context, response *SearchResponse) (*model.SearchResult, error) {

	result := &model.SearchResult{
		Total: int64(response.Hits.Total.Value),
	}

	if len(response.Aggregations) > 0 {
		aggregations, err := aggtable.Decode(response.Aggregations)
		if err != nil {
			return nil, fmt.Errorf("failed to decode aggregations: %w", err)
		}
		result.Aggregations = aggregations
	}

	hits := make([]any, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		converted, err := os.convertHit(hit)
		if err != nil {
			// Log error but continue processing other hits
			slog.ErrorContext(ctx, "failed to convert hit", "hit_id", hit.ID, "error", err)
			continue
		}
		hits = append(hits, converted)
	}
	result.Hits = aggtable.NewObject(
		aggtable.Field{Name: "total", Value: aggtable.NewObject(
			aggtable.Field{Name: "value", Value: result.Total},
		)},
		aggtable.Field{Name: "hits", Value: hits},
	)

	return result, nil
}

// convertHit converts a single OpenSearch hit into a {"_id", "_source"} object
func (os *OpenSearchSearcher) convertHit(hit Hit) (*aggtable.Object, error) {
	var source any
	if hit.Source != nil {
		decoded, err := aggtable.Decode(hit.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal source data: %w", err)
		}
		source = decoded
	}

	return aggtable.NewObject(
		aggtable.Field{Name: "_id", Value: hit.ID},
		aggtable.Field{Name: "_source", Value: source},
	), nil
}

// NewSearcher returns a new OpenSearchSearcher implementation
func NewSearcher(ctx context.Context, config Config) (port.AggregationSearcher, error) {

	if config.URL == "" {
		slog.ErrorContext(ctx, "opensearch URL is required")
		return nil, fmt.Errorf("opensearch URL is required")
	}
	if config.Index == "" {
		slog.ErrorContext(ctx, "opensearch index is required")
		return nil, fmt.Errorf("opensearch index is required")
	}

	opensearchClient, errOpensearchClient := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: []string{config.URL},
			Username:  config.Username,
			Password:  config.Password,
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: 10 * time.Second,
				DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: config.Insecure, //nolint:gosec // opt-in for self-signed dev clusters
				},
			},
		},
	})
	if errOpensearchClient != nil {
		slog.ErrorContext(ctx, "failed to create OpenSearch client", "error", errOpensearchClient)
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", errOpensearchClient)
	}

	return &OpenSearchSearcher{
		client: &httpClient{
			client: opensearchClient,
		},
		index: config.Index,
	}, nil
}
