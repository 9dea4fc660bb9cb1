// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jpvasconcelos/affinity/internal/api"
	"github.com/jpvasconcelos/affinity/internal/artwork"
	"github.com/jpvasconcelos/affinity/internal/cache"
	"github.com/jpvasconcelos/affinity/internal/catalog"
	"github.com/jpvasconcelos/affinity/internal/config"
	"github.com/jpvasconcelos/affinity/internal/logging"
	"github.com/jpvasconcelos/affinity/internal/recommend"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()
	logger.Info().
		Strs("catalogs", cfg.Catalog.EnabledKinds()).
		Int("port", cfg.Server.Port).
		Msg("starting affinity")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore(logger)
	if err := loadCatalogs(store, cfg); err != nil {
		return err
	}

	engine, err := recommend.NewEngine(engineConfig(cfg), store, logger)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	artworkClient, err := buildArtworkClient(cfg, logger)
	if err != nil {
		return err
	}
	if artworkClient != nil {
		defer artworkClient.Close()
	}

	if cfg.Catalog.RefreshInterval > 0 {
		go refreshCatalogs(ctx, store, cfg, logger)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewServer(cfg, engine, artworkClient, logger).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

// catalogPaths maps each enabled kind to its configured file.
func catalogPaths(cfg *config.Config) map[catalog.MediaKind]string {
	paths := make(map[catalog.MediaKind]string)
	if cfg.Catalog.GamesPath != "" {
		paths[catalog.KindGame] = cfg.Catalog.GamesPath
	}
	if cfg.Catalog.MoviesPath != "" {
		paths[catalog.KindMovie] = cfg.Catalog.MoviesPath
	}
	if cfg.Catalog.MusicPath != "" {
		paths[catalog.KindTrack] = cfg.Catalog.MusicPath
	}
	return paths
}

// loadCatalogs builds the startup snapshots, one goroutine per kind:
// vectorizing three large catalogs sequentially would triple startup
// time for nothing.
func loadCatalogs(store *catalog.Store, cfg *config.Config) error {
	paths := catalogPaths(cfg)

	var wg sync.WaitGroup
	errs := make(chan error, len(paths))
	for kind, path := range paths {
		wg.Add(1)
		go func(kind catalog.MediaKind, path string) {
			defer wg.Done()
			if err := store.LoadAndSwap(kind, path, cfg.Catalog.MaxVocabulary); err != nil {
				errs <- fmt.Errorf("load %s catalog: %w", kind, err)
			}
		}(kind, path)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		return err
	}
	return nil
}

// refreshCatalogs periodically rebuilds snapshots from disk so catalog
// updates land without a restart. A failed reload keeps the previous
// snapshot serving.
func refreshCatalogs(ctx context.Context, store *catalog.Store, cfg *config.Config, logger zerolog.Logger) {
	ticker := time.NewTicker(cfg.Catalog.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for kind, path := range catalogPaths(cfg) {
				if err := store.LoadAndSwap(kind, path, cfg.Catalog.MaxVocabulary); err != nil {
					logger.Error().Err(err).Str("kind", kind.String()).Msg("catalog refresh failed, keeping previous snapshot")
				}
			}
		}
	}
}

func engineConfig(cfg *config.Config) *recommend.Config {
	engineCfg := recommend.DefaultConfig()
	if cfg.Recommend.MainCount > 0 {
		engineCfg.MainCount = cfg.Recommend.MainCount
	}
	if cfg.Recommend.CategoryCount > 0 {
		engineCfg.CategoryCount = cfg.Recommend.CategoryCount
	}
	engineCfg.CacheTTL = cfg.Recommend.CacheTTL
	engineCfg.CacheMaxEntries = cfg.Recommend.CacheMaxEntries
	engineCfg.Seed = cfg.Recommend.Seed
	return engineCfg
}

// buildArtworkClient wires the optional track metadata integration with
// its configured cache backend.
func buildArtworkClient(cfg *config.Config, logger zerolog.Logger) (*artwork.Client, error) {
	if !cfg.Artwork.Enabled {
		return nil, nil
	}

	var store cache.Store
	switch cfg.Artwork.CacheBackend {
	case "badger":
		badgerStore, err := cache.NewBadger(cfg.Artwork.CachePath, logger)
		if err != nil {
			return nil, fmt.Errorf("open artwork cache: %w", err)
		}
		store = badgerStore
	default:
		store = cache.NewMemory(time.Minute, 10000)
	}

	client, err := artwork.NewClient(artwork.Config{
		BaseURL:           cfg.Artwork.BaseURL,
		TokenURL:          cfg.Artwork.TokenURL,
		ClientID:          cfg.Artwork.ClientID,
		ClientSecret:      cfg.Artwork.ClientSecret,
		Timeout:           cfg.Artwork.Timeout,
		RequestsPerSecond: cfg.Artwork.RequestsPerSecond,
		CacheTTL:          cfg.Artwork.CacheTTL,
	}, store, logger)
	if err != nil {
		return nil, fmt.Errorf("build artwork client: %w", err)
	}
	return client, nil
}
