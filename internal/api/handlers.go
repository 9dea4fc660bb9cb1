// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/jpvasconcelos/affinity/internal/artwork"
	"github.com/jpvasconcelos/affinity/internal/catalog"
	"github.com/jpvasconcelos/affinity/internal/models"
	"github.com/jpvasconcelos/affinity/internal/recommend"
	"github.com/jpvasconcelos/affinity/internal/validation"
)

// maxRequestBody bounds POST bodies; a recommendation request is a few
// hundred bytes of ids.
const maxRequestBody = 64 << 10

// mediaKind resolves the {media} route parameter.
func (s *Server) mediaKind(w http.ResponseWriter, r *http.Request) (catalog.MediaKind, bool) {
	raw := chi.URLParam(r, "media")
	kind, err := catalog.ParseMediaKind(raw)
	if err != nil {
		s.respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound,
			fmt.Sprintf("unknown media kind %q", raw), nil)
		return 0, false
	}
	return kind, true
}

// handleGenres serves GET /api/v1/{media}/genres.
func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	kind, ok := s.mediaKind(w, r)
	if !ok {
		return
	}

	genres, err := s.engine.Genres(kind)
	if err != nil {
		s.respondEngineError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, map[string]interface{}{"genres": genres}, start, false)
}

// handleSearch serves GET /api/v1/{media}/search?q=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	kind, ok := s.mediaKind(w, r)
	if !ok {
		return
	}

	results, err := s.engine.Search(r.Context(), kind, r.URL.Query().Get("q"))
	if err != nil {
		s.respondEngineError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, map[string]interface{}{"results": results}, start, false)
}

// handleDiscover serves GET /api/v1/{media}/discover.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	kind, ok := s.mediaKind(w, r)
	if !ok {
		return
	}

	items, err := s.engine.Discover(r.Context(), kind)
	if err != nil {
		s.respondEngineError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, map[string]interface{}{"items": items}, start, false)
}

// handleRecommend serves POST /api/v1/{media}/recommend.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	kind, ok := s.mediaKind(w, r)
	if !ok {
		return
	}

	var req models.RecommendRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		s.respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, verr.Error(), verr.Details())
		return
	}
	if min := s.cfg.Recommend.MinSelection; len(req.SelectedIDs) < min {
		s.respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			fmt.Sprintf("at least %d selected ids are required", min),
			map[string]string{"selected_ids": fmt.Sprintf("must contain at least %d items", min)})
		return
	}

	resp, cached, err := s.engine.Recommend(r.Context(), recommend.Request{
		Kind:        kind,
		SelectedIDs: req.SelectedIDs,
		Genre:       req.Genre,
	})
	if err != nil {
		s.respondEngineError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, resp, start, cached)
}

// handleTrackDetails serves POST /api/v1/music/track-details.
func (s *Server) handleTrackDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if s.artwork == nil {
		s.respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeUpstream,
			"track metadata integration is disabled", nil)
		return
	}

	var req models.TrackDetailsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		s.respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, verr.Error(), verr.Details())
		return
	}

	details, err := s.artwork.TrackDetails(r.Context(), req.TrackIDs)
	if err != nil {
		if errors.Is(err, artwork.ErrUnavailable) {
			s.respondError(w, r, http.StatusBadGateway, models.ErrCodeUpstream, "track metadata upstream unavailable", nil)
			return
		}
		s.respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "track metadata lookup failed", nil)
		return
	}
	s.respond(w, r, http.StatusOK, map[string]interface{}{"tracks": details}, start, false)
}

// handleStatus serves GET /api/v1/recommendations/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.respond(w, r, http.StatusOK, map[string]interface{}{
		"engine":   s.engine.Status(),
		"catalogs": s.engine.Snapshots(),
	}, start, false)
}

// handleHealthLive reports process liveness.
func (s *Server) handleHealthLive(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "alive"}, time.Now(), false)
}

// handleHealthReady reports readiness: at least one catalog snapshot
// must be loaded before the service can answer anything useful.
func (s *Server) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snaps := s.engine.Snapshots()
	if len(snaps) == 0 {
		s.respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeCatalogUnavailable,
			"no catalog snapshots loaded", nil)
		return
	}
	s.respond(w, r, http.StatusOK, map[string]interface{}{"status": "ready", "catalogs": snaps}, start, false)
}

// decodeBody parses a JSON request body, rejecting unknown fields.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.respondError(w, r, http.StatusBadRequest, models.ErrCodeInvalidInput,
			fmt.Sprintf("invalid request body: %v", err), nil)
		return false
	}
	return true
}

// respondEngineError maps engine errors onto HTTP statuses.
func (s *Server) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		s.respondError(w, r, http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error(), nil)
	case errors.Is(err, recommend.ErrCatalogUnavailable):
		s.respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeCatalogUnavailable, err.Error(), nil)
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "internal error", nil)
	}
}
