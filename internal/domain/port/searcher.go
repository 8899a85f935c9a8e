// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/Russellleung/dashBot/internal/domain/model"
)

// AggregationSearcher defines the behavior for executing aggregation queries
// This abstraction allows different search implementations (OpenSearch, mock)
// without the service layer knowing about specific implementations
type AggregationSearcher interface {
	// Search executes the query and returns the raw aggregation and hit trees
	Search(ctx context.Context, query model.TableQuery) (*model.SearchResult, error)

	// IsReady checks if the search service is ready
	IsReady(ctx context.Context) error
}
