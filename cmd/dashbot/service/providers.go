// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/Russellleung/dashBot/internal/domain/port"
	"github.com/Russellleung/dashBot/internal/infrastructure/mock"
	"github.com/Russellleung/dashBot/internal/infrastructure/opensearch"
	usecase "github.com/Russellleung/dashBot/internal/service"
	"github.com/Russellleung/dashBot/pkg/aggtable"
	"github.com/Russellleung/dashBot/pkg/constants"
)

// SearcherImpl injects the aggregation searcher implementation
func SearcherImpl(ctx context.Context) port.AggregationSearcher {

	var (
		searcher port.AggregationSearcher
		err      error
	)

	// Search source implementation configuration
	searchSource := os.Getenv("SEARCH_SOURCE")
	if searchSource == "" {
		searchSource = "opensearch"
	}

	opensearchURL := os.Getenv("OPENSEARCH_URL")
	if opensearchURL == "" {
		opensearchURL = "http://localhost:9200"
	}

	opensearchIndex := os.Getenv("OPENSEARCH_INDEX")
	if opensearchIndex == "" {
		opensearchIndex = constants.DefaultIndex
	}

	switch searchSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock aggregation searcher")
		searcher = mock.NewMockSearcher()

	case "opensearch":
		insecure, errInsecure := envBool("OPENSEARCH_INSECURE", false)
		if errInsecure != nil {
			log.Fatalf("invalid OPENSEARCH_INSECURE value: %v", errInsecure)
		}

		slog.InfoContext(ctx, "initializing opensearch aggregation searcher",
			"url", opensearchURL,
			"index", opensearchIndex,
			"insecure", insecure,
		)
		opensearchConfig := opensearch.Config{
			URL:      opensearchURL,
			Index:    opensearchIndex,
			Username: os.Getenv("OPENSEARCH_USERNAME"),
			Password: os.Getenv("OPENSEARCH_PASSWORD"),
			Insecure: insecure,
		}

		searcher, err = opensearch.NewSearcher(ctx, opensearchConfig)
		if err != nil {
			log.Fatalf("failed to initialize OpenSearch searcher: %v", err)
		}

	default:
		log.Fatalf("unsupported search implementation: %s", searchSource)
	}

	return searcher
}

// TableQueryOptions reads the table shaping configuration from the environment
func TableQueryOptions(ctx context.Context) []usecase.TableQueryOption {

	qualified, err := envBool("TABLE_QUALIFIED_NAMES", false)
	if err != nil {
		log.Fatalf("invalid TABLE_QUALIFIED_NAMES value: %v", err)
	}

	maxDepth := aggtable.DefaultMaxDepth
	if raw := os.Getenv("TABLE_MAX_DEPTH"); raw != "" {
		maxDepth, err = strconv.Atoi(raw)
		if err != nil || maxDepth <= 0 {
			log.Fatalf("invalid TABLE_MAX_DEPTH value %s: must be a positive integer", raw)
		}
	}

	slog.InfoContext(ctx, "table query configuration",
		"qualified_names", qualified,
		"max_depth", maxDepth,
	)

	return []usecase.TableQueryOption{
		usecase.WithQualifiedNames(qualified),
		usecase.WithMaxDepth(maxDepth),
	}
}

func envBool(name string, fallback bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(raw)
}
