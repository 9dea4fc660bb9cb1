// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/jpvasconcelos/affinity/internal/logging"
	"github.com/jpvasconcelos/affinity/internal/models"
)

// respond writes the success envelope. GET responses carry an ETag over
// the serialized body and honor If-None-Match, so clients polling
// discover or genres pay for unchanged payloads only once.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time, cached bool) {
	envelope := models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error().Err(err).Msg("response marshal failed")
		s.respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "failed to encode response", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet {
		// The ETag covers the payload, not the envelope: metadata
		// timestamps change every request and would defeat caching.
		if payload, err := json.Marshal(data); err == nil {
			etag := fmt.Sprintf("%q", etagFor(payload))
			w.Header().Set("ETag", etag)
			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log := logging.FromContext(r.Context())
		log.Debug().Err(err).Msg("response write failed")
	}
}

// respondError writes the error envelope.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]string) {
	envelope := models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	log := logging.FromContext(r.Context())
	log.Debug().
		Int("status", status).
		Str("code", code).
		Str("path", r.URL.Path).
		Msg(message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		s.logger.Error().Err(err).Msg("error response write failed")
	}
}

func etagFor(body []byte) string {
	h := fnv.New64a()
	h.Write(body)
	return fmt.Sprintf("%x", h.Sum64())
}
