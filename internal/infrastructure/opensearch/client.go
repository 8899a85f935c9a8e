// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/Russellleung/dashBot/pkg/errors"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

type httpClient struct {
	client *opensearchapi.Client
}

func (c *httpClient) Search(ctx context.Context, index string, query []byte) (*SearchResponse, error) {

	slog.DebugContext(ctx, "executing opensearch search",
		"index", index,
		"query", string(query),
	)

	searchRequest := opensearchapi.SearchReq{
		Indices: []string{index},
		Body:    bytes.NewReader(query),
	}

	searchResponse, errSearchResponse := c.client.Search(ctx, &searchRequest)
	if errSearchResponse != nil {
		return nil, fmt.Errorf("failed to execute search: %w", errSearchResponse)
	}

	// Check for errors in the response
	if searchResponse.Errors {
		return nil, fmt.Errorf("opensearch search returned errors")
	}

	result := &SearchResponse{
		Hits: Hits{
			Total: Total{
				Value:    searchResponse.Hits.Total.Value,
				Relation: searchResponse.Hits.Total.Relation,
			},
			Hits: make([]Hit, len(searchResponse.Hits.Hits)),
		},
		Aggregations: searchResponse.Aggregations,
	}
	for i, hit := range searchResponse.Hits.Hits {
		result.Hits.Hits[i] = Hit{
			ID:     hit.ID,
			Index:  hit.Index,
			Source: hit.Source,
		}
	}

	slog.DebugContext(ctx, "opensearch search returned",
		"index", index,
		"total_hits", result.Hits.Total.Value,
		"aggregations_bytes", len(result.Aggregations),
	)

	return result, nil
}

func (c *httpClient) IsReady(ctx context.Context) error {
	health, err := c.client.Cluster.Health(ctx, nil)
	if err != nil {
		return errors.NewServiceUnavailable("opensearch cluster health check failed", err)
	}
	if health.Status != clusterHealthGreen && health.Status != clusterHealthYellow {
		return errors.NewServiceUnavailable(fmt.Sprintf("opensearch cluster status is %s", health.Status))
	}
	return nil
}
