// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Russellleung/dashBot/internal/domain/model"
	"github.com/Russellleung/dashBot/internal/domain/port"
	"github.com/Russellleung/dashBot/pkg/aggtable"
	"github.com/Russellleung/dashBot/pkg/constants"
	"github.com/Russellleung/dashBot/pkg/errors"
)

// TableQuery runs dashboard queries and turns their aggregations into tables.
// It depends on the AggregationSearcher abstraction, not on a backend.
type TableQuery struct {
	searcher  port.AggregationSearcher
	assembler aggtable.Assembler
}

// TableQueryOption customizes a TableQuery
type TableQueryOption func(*TableQuery)

// WithQualifiedNames names every column by its full aggregation path
func WithQualifiedNames(qualified bool) TableQueryOption {
	return func(s *TableQuery) {
		s.assembler.QualifiedNames = qualified
	}
}

// WithMaxDepth sets the deepest zero-based aggregation level flattened
func WithMaxDepth(depth int) TableQueryOption {
	return func(s *TableQuery) {
		s.assembler.MaxDepth = depth
	}
}

// QueryTables searches with the query body and assembles one table per
// top-level aggregation, plus a documents table when hits came back.
func (s *TableQuery) QueryTables(ctx context.Context, query model.TableQuery) (*model.TableResult, error) {

	slog.DebugContext(ctx, "starting table query",
		"name", query.Name,
		"index", query.Index,
	)

	body, err := s.prepareBody(query.Body)
	if err != nil {
		slog.With("error", err).ErrorContext(ctx, "table query validation failed")
		return nil, err
	}
	query.Body = body

	found, err := s.searcher.Search(ctx, query)
	if err != nil {
		slog.With("error", err).ErrorContext(ctx, "search operation failed")
		return nil, errors.NewServiceUnavailable("search operation failed", err)
	}

	tables, err := s.assembler.AssembleContext(ctx, found.Aggregations)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble tables: %w", err)
	}

	result := &model.TableResult{
		Tables: tables,
		Total:  found.Total,
	}
	if found.Hits != nil {
		if docs, ok := aggtable.DocumentsTable(found.Hits); ok {
			result.Documents = &docs
		}
	}

	slog.DebugContext(ctx, "table query completed",
		"name", query.Name,
		"tables", result.Tables.Names(),
		"total", result.Total,
		"empty", result.Empty(),
	)

	return result, nil
}

// prepareBody checks the body is a JSON object and applies the default
// hit size when the caller did not set one
func (s *TableQuery) prepareBody(body json.RawMessage) (json.RawMessage, error) {
	if len(body) == 0 {
		return nil, errors.NewValidation("query body is required")
	}

	decoded, err := aggtable.Decode(body)
	if err != nil {
		return nil, errors.NewValidation("query body is not valid JSON", err)
	}
	obj, ok := decoded.(*aggtable.Object)
	if !ok {
		return nil, errors.NewValidation("query body must be a JSON object")
	}
	if _, ok := obj.Get("size"); ok {
		return body, nil
	}

	fields := append(obj.Fields(), aggtable.Field{Name: "size", Value: int64(constants.DefaultSearchSize)})
	sized, err := aggtable.NewObject(fields...).MarshalJSON()
	if err != nil {
		return nil, errors.NewUnexpected("failed to encode query body", err)
	}
	return sized, nil
}

// IsReady reports whether the search backend can serve queries
func (s *TableQuery) IsReady(ctx context.Context) error {
	return s.searcher.IsReady(ctx)
}

// NewTableQuery creates a new TableQuery instance
func NewTableQuery(searcher port.AggregationSearcher, opts ...TableQueryOption) *TableQuery {
	s := &TableQuery{
		searcher: searcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
