// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"time"
)

// Config holds the configuration for the HTTP client
type Config struct {
	// Timeout bounds each attempt
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay before the first retry
	RetryDelay time.Duration

	// RetryBackoff doubles the delay after every retry
	RetryBackoff bool

	// MaxBodyBytes caps the response body; zero means no limit
	MaxBodyBytes int64
}

// DefaultConfig returns the configuration used to fetch saved responses
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   2,
		RetryDelay:   1 * time.Second,
		RetryBackoff: true,
		MaxBodyBytes: 64 << 20,
	}
}
