package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/staybook/internal/booking"
	"github.com/example/staybook/internal/config"
	handlers "github.com/example/staybook/internal/http"
	"github.com/example/staybook/internal/obs"
	"github.com/example/staybook/internal/pricing"
	"github.com/example/staybook/internal/providers"
	"github.com/example/staybook/internal/routes"
	"github.com/example/staybook/internal/search"
	"github.com/prometheus/client_golang/prometheus"
)

const limiterSweepInterval = time.Minute

type App struct {
	Router      http.Handler
	Aggregator  search.AggregatorService
	Quoter      *booking.Quoter
	RateLimiter *search.IPRateLimiter
	Metrics     *obs.Metrics
}

// New wires the listing sources, search, quoting and the HTTP router. The
// built-in catalog is always served; CATALOG_PATH adds a YAML catalog next
// to it.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	providersList := []search.Provider{
		providers.NewStaticProvider("seed", providers.SeedListings()),
	}
	if cfg.CatalogPath != "" {
		providersList = append(providersList, providers.NewFileProvider("catalog", cfg.CatalogPath))
	}

	pricer, err := pricing.NewPricer(pricing.FeeRates{
		Cleaning: cfg.Fees.CleaningRate,
		Service:  cfg.Fees.ServiceRate,
	})
	if err != nil {
		return nil, fmt.Errorf("fee rates: %w", err)
	}

	customRegistry := prometheus.NewRegistry()
	metrics := obs.NewMetrics(customRegistry)
	agg := search.NewAggregator(providersList, cfg.SearchTimeout, metrics, logger)
	// sources get SearchTimeout; the whole lookup may use the request budget
	svc := search.NewService(agg, metrics, cfg.RequestTimeout)
	quoter := booking.NewQuoter(svc, pricer, metrics, logger)
	rl := search.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	h := handlers.NewHandler(svc, quoter, rl, metrics, logger)

	router := routes.GetRoutes(h, metrics, logger, routes.Options{
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	logger.Info("app configured",
		"providers", len(providersList),
		"cleaning_fee_rate", cfg.Fees.CleaningRate,
		"service_fee_rate", cfg.Fees.ServiceRate,
	)

	return &App{
		Router:      router,
		Aggregator:  agg,
		Quoter:      quoter,
		RateLimiter: rl,
		Metrics:     metrics,
	}, nil
}

// Run starts background work tied to ctx: idle rate-limit entries are
// dropped until ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	go a.RateLimiter.Run(ctx, limiterSweepInterval)
}
