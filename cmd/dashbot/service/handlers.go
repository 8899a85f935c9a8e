// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Russellleung/dashBot/internal/domain/model"
	"github.com/Russellleung/dashBot/pkg/constants"
	"github.com/Russellleung/dashBot/pkg/errors"

	goahttp "goa.design/goa/v3/http"
)

// TableQuerier is what the HTTP layer needs from the table service
type TableQuerier interface {
	QueryTables(ctx context.Context, query model.TableQuery) (*model.TableResult, error)
	IsReady(ctx context.Context) error
}

// MountPoint describes one mounted endpoint
type MountPoint struct {
	Method  string
	Pattern string
}

// Handlers serves the dashbot HTTP API
type Handlers struct {
	tables TableQuerier
	Mounts []MountPoint
}

// Mount registers every endpoint on mux
func (h *Handlers) Mount(mux goahttp.Muxer) {
	h.handle(mux, http.MethodPost, "/query/tables", h.QueryTables)
	h.handle(mux, http.MethodGet, "/readyz", h.Readyz)
	h.handle(mux, http.MethodGet, "/livez", h.Livez)
}

func (h *Handlers) handle(mux goahttp.Muxer, method, pattern string, fn http.HandlerFunc) {
	mux.Handle(method, pattern, fn)
	h.Mounts = append(h.Mounts, MountPoint{Method: method, Pattern: pattern})
}

// QueryTables runs the posted query and answers with its tables
func (h *Handlers) QueryTables(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxQueryBodyBytes)

	var query model.TableQuery
	if err := goahttp.RequestDecoder(r).Decode(&query); err != nil {
		h.fail(ctx, w, errors.NewValidation("invalid request body", err))
		return
	}

	slog.DebugContext(ctx, "dashbot.query-tables",
		"name", query.Name,
		"index", query.Index,
	)

	result, err := h.tables.QueryTables(ctx, query)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	encode(ctx, w, http.StatusOK, result)
}

// Readyz checks whether the search backend is ready
func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.tables.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "dashbot.readyz failed", "error", err)
		h.fail(ctx, w, err)
		return
	}
	plain(w, http.StatusOK, "OK\n")
}

// Livez answers as long as the process is running. As a Kubernetes liveness
// check, non-recoverable errors must make the service terminate itself.
func (h *Handlers) Livez(w http.ResponseWriter, _ *http.Request) {
	plain(w, http.StatusOK, "OK\n")
}

func (h *Handlers) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := wrapError(ctx, err)
	encode(ctx, w, status, body)
}

func encode(ctx context.Context, w http.ResponseWriter, status int, v any) {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func plain(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// NewHandlers creates the HTTP handlers over the table service
func NewHandlers(tables TableQuerier) *Handlers {
	return &Handlers{
		tables: tables,
	}
}
