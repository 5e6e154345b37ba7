package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-portal-api/internal/cache"
	"news-portal-api/internal/config"
	"news-portal-api/internal/database"
	"news-portal-api/internal/handlers"
	"news-portal-api/internal/logging"
	"news-portal-api/internal/news"
	"news-portal-api/internal/realtime"
	"news-portal-api/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	db, err := database.Open(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init failed")
	}
	if cfg.Database.Seed {
		n, err := database.Seed(db)
		if err != nil {
			logger.Fatal().Err(err).Msg("seed failed")
		}
		logger.Info().Int("categories", n).Msg("database seeded")
	}

	responses := cache.New[any](cache.Options{
		DefaultTTL:    cfg.Cache.DefaultTTL,
		SweepInterval: cfg.Cache.SweepInterval,
		Logger:        &logger,
	})
	responses.Start()
	defer responses.Stop()

	hub := realtime.NewHub()
	svc := news.NewService(db, responses, hub, logger, news.Options{})

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRoutes(handlers.New(svc, hub, logger, cfg.HTTP.SiteURL))

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Signal-aware context owns shutdown of the server and the cache sweeper.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped with error")
			stop()
		}
	}()
	logger.Info().
		Str("addr", cfg.HTTP.Addr).
		Dur("cache_ttl", cfg.Cache.DefaultTTL).
		Dur("cache_sweep", cfg.Cache.SweepInterval).
		Msg("news portal API listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	logger.Info().Interface("cache", responses.Stats()).Msg("bye")
}
