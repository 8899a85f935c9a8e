// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package httpclient fetches JSON documents over HTTP with retries.
package httpclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Russellleung/dashBot/pkg/constants"
	"github.com/Russellleung/dashBot/pkg/errors"
)

// Client is an HTTP client with retry logic
type Client struct {
	config     Config
	httpClient *http.Client
}

// StatusError is returned for any response with a status of 400 or above
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Fetch GETs url and returns the response body. A 404 is reported as
// errors.NotFound, server errors and throttling that survive every retry as
// errors.ServiceUnavailable.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay
			if c.config.RetryBackoff {
				delay = time.Duration(int64(delay) * int64(1<<(attempt-1)))
			}

			slog.DebugContext(ctx, "retrying request",
				"url", url,
				"attempt", attempt,
				"delay", delay,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !shouldRetry(err) {
			break
		}
	}

	slog.ErrorContext(ctx, "request failed", "url", url, "error", lastErr)

	var status *StatusError
	if stderrors.As(lastErr, &status) {
		switch {
		case status.StatusCode == http.StatusNotFound:
			return nil, errors.NewNotFound(fmt.Sprintf("%s not found", url), lastErr)
		case retryableStatus(status.StatusCode):
			return nil, errors.NewServiceUnavailable(fmt.Sprintf("%s unavailable", url), lastErr)
		}
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", constants.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if c.config.MaxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, c.config.MaxBodyBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if c.config.MaxBodyBytes > 0 && int64(len(body)) > c.config.MaxBodyBytes {
		return nil, errors.NewValidation(fmt.Sprintf("response body exceeds %d bytes", c.config.MaxBodyBytes))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// shouldRetry retries server errors, throttling and network failures
func shouldRetry(err error) bool {
	var status *StatusError
	if stderrors.As(err, &status) {
		return retryableStatus(status.StatusCode)
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return stderrors.As(err, &netErr)
}

func retryableStatus(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}
