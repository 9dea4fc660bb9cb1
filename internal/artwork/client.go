// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package artwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jpvasconcelos/affinity/internal/cache"
	"github.com/jpvasconcelos/affinity/internal/metrics"
)

// batchSize is the upstream's maximum ids per lookup request.
const batchSize = 50

// ErrUnavailable is returned when the upstream is down or the circuit
// breaker is open. Cached details are still served.
var ErrUnavailable = errors.New("artwork upstream unavailable")

// TrackDetail is the enriched metadata for one track.
type TrackDetail struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	ImageURL   string `json:"image_url,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// Config holds the upstream endpoints and client credentials.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration

	// RequestsPerSecond throttles upstream lookups. Zero means no limit.
	RequestsPerSecond float64

	// CacheTTL bounds how long fetched details are reused.
	CacheTTL time.Duration
}

// Client fetches track artwork and preview metadata from the upstream
// catalog service. Responses are cached per track id; upstream failures
// trip a circuit breaker so a dead upstream cannot stall every request.
type Client struct {
	cfg     Config
	httpc   *http.Client
	store   cache.Store
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]TrackDetail]
	tokens  *tokenSource
	logger  zerolog.Logger
}

// NewClient validates cfg and builds a client backed by store.
func NewClient(cfg Config, store cache.Store, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" || cfg.TokenURL == "" {
		return nil, fmt.Errorf("artwork base_url and token_url are required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("artwork client credentials are required")
	}
	if store == nil {
		return nil, fmt.Errorf("artwork cache store is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	log := logger.With().Str("component", "artwork").Logger()
	httpc := &http.Client{Timeout: cfg.Timeout}

	breaker := gobreaker.NewCircuitBreaker[[]TrackDetail](gobreaker.Settings{
		Name:        "artwork",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.ArtworkBreakerState.Set(breakerStateValue(to))
			log.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("artwork breaker state changed")
		},
	})

	return &Client{
		cfg:     cfg,
		httpc:   httpc,
		store:   store,
		limiter: rate.NewLimiter(limit, 1),
		breaker: breaker,
		tokens:  newTokenSource(cfg, httpc),
		logger:  log,
	}, nil
}

// TrackDetails resolves metadata for ids, serving from cache where
// possible and batching the remainder through the upstream. The result
// preserves the input order; ids unknown upstream are dropped.
func (c *Client) TrackDetails(ctx context.Context, ids []string) ([]TrackDetail, error) {
	byID := make(map[string]TrackDetail, len(ids))
	var missing []string
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if detail, ok := c.cached(id); ok {
			byID[id] = detail
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		metrics.RecordCacheHit("artwork")
	} else {
		metrics.RecordCacheMiss("artwork")
	}

	for start := 0; start < len(missing); start += batchSize {
		end := start + batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch, err := c.fetchBatch(ctx, missing[start:end])
		if err != nil {
			return nil, err
		}
		for _, detail := range batch {
			byID[detail.ID] = detail
			c.cachePut(detail)
		}
	}

	details := make([]TrackDetail, 0, len(byID))
	for _, id := range ids {
		if detail, ok := byID[id]; ok {
			details = append(details, detail)
			delete(byID, id)
		}
	}
	return details, nil
}

func (c *Client) fetchBatch(ctx context.Context, ids []string) ([]TrackDetail, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("artwork rate limit wait: %w", err)
	}

	details, err := c.breaker.Execute(func() ([]TrackDetail, error) {
		return c.lookup(ctx, ids)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ArtworkUpstreamRequests.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: circuit open", ErrUnavailable)
	case err != nil:
		metrics.ArtworkUpstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	metrics.ArtworkUpstreamRequests.WithLabelValues("success").Inc()
	return details, nil
}

// lookup performs one authenticated batch request against the upstream.
func (c *Client) lookup(ctx context.Context, ids []string) ([]TrackDetail, error) {
	token, err := c.tokens.get(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/tracks?ids=" + url.QueryEscape(strings.Join(ids, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build track request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("track lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.invalidate()
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("track lookup returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Tracks []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name   string `json:"name"`
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
			PreviewURL string `json:"preview_url"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode track response: %w", err)
	}

	details := make([]TrackDetail, 0, len(payload.Tracks))
	for _, track := range payload.Tracks {
		if track.ID == "" {
			continue
		}
		detail := TrackDetail{
			ID:         track.ID,
			Name:       track.Name,
			Album:      track.Album.Name,
			PreviewURL: track.PreviewURL,
		}
		if len(track.Artists) > 0 {
			detail.Artist = track.Artists[0].Name
		}
		if len(track.Album.Images) > 0 {
			detail.ImageURL = track.Album.Images[0].URL
		}
		details = append(details, detail)
	}
	return details, nil
}

func (c *Client) cached(id string) (TrackDetail, bool) {
	raw, ok := c.store.Get(cacheKey(id))
	if !ok {
		return TrackDetail{}, false
	}
	var detail TrackDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		c.logger.Warn().Err(err).Str("id", id).Msg("corrupt artwork cache entry, dropping")
		_ = c.store.Delete(cacheKey(id))
		return TrackDetail{}, false
	}
	return detail, true
}

func (c *Client) cachePut(detail TrackDetail) {
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if err := c.store.Set(cacheKey(detail.ID), raw, c.cfg.CacheTTL); err != nil {
		c.logger.Warn().Err(err).Str("id", detail.ID).Msg("artwork cache write failed")
	}
}

// Close releases the backing cache store.
func (c *Client) Close() error {
	return c.store.Close()
}

func cacheKey(id string) string {
	return "artwork:" + id
}

func breakerStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
