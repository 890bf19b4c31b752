package routes

import (
	"log/slog"
	"time"

	handlers "github.com/example/staybook/internal/http"
	mid "github.com/example/staybook/internal/middleware"
	"github.com/example/staybook/internal/obs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

func GetRoutes(h *handlers.Handler, metrics *obs.Metrics, logger *slog.Logger, opts Options) *chi.Mux {
	r := chi.NewRouter()
	// Useful built-in middlewares
	r.Use(middleware.RealIP)    // proper client IP extraction
	r.Use(middleware.RequestID) // sets request ID in the context
	r.Use(middleware.Recoverer) // built-in recoverer to avoid panics taking server down

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// our custom middlewares: metrics & logging
	r.Use(mid.MetricsMiddleware(metrics))
	r.Use(mid.LoggingMiddleware(logger))
	// responds 504 when a handler returns after the deadline
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", h.Search)
		r.Get("/{id}", h.GetListing)
		r.Get("/{id}/quote", h.Quote)
	})
	r.Get("/healthz", h.Healthz)
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	return r
}
