// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/Russellleung/dashBot/internal/middleware"
	"github.com/Russellleung/dashBot/pkg/errors"
)

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// wrapError maps an error onto the HTTP status and body returned to the caller
func wrapError(ctx context.Context, err error) (int, ErrorBody) {

	f := func(err error) (int, ErrorBody) {
		if err == nil {
			return http.StatusInternalServerError, ErrorBody{Message: "unknown error"}
		}

		var (
			validation  errors.Validation
			notFound    errors.NotFound
			unavailable errors.ServiceUnavailable
		)
		switch {
		case stderrors.As(err, &validation):
			return http.StatusBadRequest, ErrorBody{Message: validation.Error()}
		case stderrors.As(err, &notFound):
			return http.StatusNotFound, ErrorBody{Message: notFound.Error()}
		case stderrors.As(err, &unavailable):
			return http.StatusServiceUnavailable, ErrorBody{Message: unavailable.Error()}
		default:
			return http.StatusInternalServerError, ErrorBody{Message: err.Error()}
		}
	}

	slog.ErrorContext(ctx, "request failed",
		"error", err,
	)
	status, body := f(err)
	body.RequestID = middleware.RequestIDFromContext(ctx)
	return status, body
}
