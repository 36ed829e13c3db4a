package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pka-index-backend/internal/config"
	"pka-index-backend/internal/database"
	"pka-index-backend/internal/handlers"
	"pka-index-backend/internal/middleware"
	"pka-index-backend/internal/router"
	"pka-index-backend/internal/services"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 1: Load Environment Variables ────
	cfg, err := setup()
	if err != nil {
		return err
	}
	log.WithField("env", cfg.Env).Info("starting pka-index backend")

	// ──── Step 2: Open Storage ────
	store, err := openStorage(cfg)
	if err != nil {
		return errors.Wrap(err, "database connection failed")
	}
	defer store.Close()
	log.WithField("max_conns", cfg.DBMaxConns).Info("database connected")

	// ──── Step 3: Run Database Migrations ────
	if err := store.migrate(cfg.MigrationsPath); err != nil {
		return errors.Wrap(err, "database migration failed")
	}
	log.Info("database migrations applied")

	// ──── Step 4: Rate Limiter ────
	rateLimiter, closeLimiter, err := newRateLimiter(cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	// ──── Step 5: Start HTTP Server ────
	episodeService := services.NewEpisodeService(store.store)
	episodeHandler := handlers.NewEpisodeHandler(episodeService)

	r := router.New(episodeHandler, router.Options{
		CORSOrigin:     cfg.CORSOrigin,
		RequestTimeout: cfg.RequestTimeout,
		RateLimiter:    rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("server started")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server error")
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newRateLimiter(cfg *config.Config) (*middleware.RateLimiter, func(), error) {
	if cfg.RateLimitPerMin <= 0 {
		return nil, func() {}, nil
	}

	if cfg.RedisURL == "" {
		counter := middleware.NewMemoryCounter(time.Minute)
		return middleware.NewRateLimiter(counter, cfg.RateLimitPerMin, time.Minute), func() {}, nil
	}

	client, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "redis connection failed")
	}
	log.Info("redis connected for rate limiting")

	counter := middleware.NewRedisCounter(client, time.Minute)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis client")
		}
	}
	return middleware.NewRateLimiter(counter, cfg.RateLimitPerMin, time.Minute), closeFn, nil
}
