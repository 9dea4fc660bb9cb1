// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package models

import "time"

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	// Status is "success" or "error".
	Status string `json:"status"`

	// Data carries the endpoint-specific payload. Nil on error.
	Data interface{} `json:"data"`

	// Metadata carries timing and caching information.
	Metadata Metadata `json:"metadata"`

	// Error is populated when Status is "error".
	Error *APIError `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMS is the server-side processing time in milliseconds.
	QueryTimeMS int64 `json:"query_time_ms"`

	// Cached indicates the payload came from the response cache.
	Cached bool `json:"cached"`
}

// APIError describes a failed request.
type APIError struct {
	// Code is a stable machine-readable identifier, e.g. "INVALID_INPUT".
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details optionally carries field-level validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used across the API.
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
