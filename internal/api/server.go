// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jpvasconcelos/affinity/internal/artwork"
	"github.com/jpvasconcelos/affinity/internal/config"
	"github.com/jpvasconcelos/affinity/internal/middleware"
	"github.com/jpvasconcelos/affinity/internal/recommend"
)

// Server wires the recommendation engine and the artwork client into the
// HTTP surface.
type Server struct {
	engine  *recommend.Engine
	artwork *artwork.Client
	cfg     *config.Config
	logger  zerolog.Logger
}

// NewServer builds the HTTP layer. artworkClient may be nil when the
// upstream integration is disabled; the track-details endpoint then
// reports the feature unavailable.
func NewServer(cfg *config.Config, engine *recommend.Engine, artworkClient *artwork.Client, logger zerolog.Logger) *Server {
	return &Server{
		engine:  engine,
		artwork: artworkClient,
		cfg:     cfg,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// Routes assembles the router with the full middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Prometheus)

	r.Route("/api/v1", func(r chi.Router) {
		if !s.cfg.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(s.cfg.Security.RateLimitReqs, s.cfg.Security.RateLimitWindow))
		}

		r.Route("/health", func(r chi.Router) {
			r.Get("/live", s.handleHealthLive)
			r.Get("/ready", s.handleHealthReady)
		})

		r.Get("/recommendations/status", s.handleStatus)
		r.Post("/music/track-details", s.handleTrackDetails)

		r.Route("/{media}", func(r chi.Router) {
			r.Get("/genres", s.handleGenres)
			r.Get("/search", s.handleSearch)
			r.Get("/discover", s.handleDiscover)
			r.Post("/recommend", s.handleRecommend)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) corsOrigins() []string {
	if len(s.cfg.Security.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.Security.CORSOrigins
}
