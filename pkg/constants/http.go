// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

type requestIDHeaderType string

// RequestIDHeader is the header name for the request ID
const RequestIDHeader requestIDHeaderType = "X-REQUEST-ID"

const (
	// ContentTypeJSON is used for every API response body
	ContentTypeJSON = "application/json"

	// MaxQueryBodyBytes caps the size of an inbound query request
	MaxQueryBodyBytes = 1 << 20
)
