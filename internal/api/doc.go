// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Package api provides the HTTP surface over the recommendation engine.
//
// Routes live under /api/v1. Every response uses the models.APIResponse
// envelope; GET responses carry payload ETags. The middleware stack adds
// request ids, panic recovery, CORS, per-IP rate limiting and Prometheus
// instrumentation, with /metrics exposed for scraping.
//
//	GET  /api/v1/{media}/genres          genre vocabulary
//	GET  /api/v1/{media}/search?q=       name/attribution search
//	GET  /api/v1/{media}/discover        starter items for empty selections
//	POST /api/v1/{media}/recommend       compute recommendations
//	POST /api/v1/music/track-details     artwork/preview enrichment
//	GET  /api/v1/recommendations/status  engine counters and snapshots
//	GET  /api/v1/health/live|ready       probes
//
// {media} is one of games, movies or music.
package api
