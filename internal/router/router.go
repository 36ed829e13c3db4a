package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"pka-index-backend/internal/handlers"
	"pka-index-backend/internal/middleware"
)

type Options struct {
	CORSOrigin     string
	RequestTimeout time.Duration
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

func New(episodeHandler *handlers.EpisodeHandler, opts Options) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigin))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Health check
	r.Get("/health", handlers.Health)

	r.Route("/v1/api", func(r chi.Router) {
		r.Route("/episode", func(r chi.Router) {
			r.Get("/watch/latest", episodeHandler.WatchLatest)
			r.Get("/watch/random", episodeHandler.WatchRandom)
			r.Get("/watch/{number}", episodeHandler.Watch)
			r.Get("/youtube_link/{number}", episodeHandler.YoutubeLink)
		})
	})

	return r
}
