// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Russellleung/dashBot/pkg/constants"
	"github.com/Russellleung/dashBot/pkg/log"

	"github.com/google/uuid"
)

// RequestIDMiddleware creates a middleware that adds a request ID to the context
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try to get request ID from header first
			requestID := r.Header.Get(string(constants.RequestIDHeader))
			if requestID == "" {
				requestID = generateRequestID()
			}

			w.Header().Set(string(constants.RequestIDHeader), requestID)

			ctx := context.WithValue(r.Context(), constants.RequestIDHeader, requestID)

			// every log line written with this context carries the request ID
			ctx = log.AppendCtx(ctx, slog.String(string(constants.RequestIDHeader), requestID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request ID set by RequestIDMiddleware, or
// an empty string
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(constants.RequestIDHeader).(string)
	return requestID
}

// generateRequestID generates a new unique request ID
func generateRequestID() string {
	return uuid.New().String()
}
