package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/handler"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/limiter"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/logger"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/metrics"
	custommiddleware "github.com/MaestroMetty/confesercenti-vallo-app/internal/middleware"
	v1 "github.com/MaestroMetty/confesercenti-vallo-app/internal/router/v1"
)

// Deps groups what the HTTP layer needs. Metrics may be nil.
type Deps struct {
	Stores      *handler.StoreHandler
	RateLimiter limiter.Limiter
	Metrics     *metrics.Metrics
	Logger      *logger.Logger

	// MetricsHandler serves /metrics; defaults to promhttp.Handler().
	MetricsHandler http.Handler
}

// SetupRouter builds the chi router with middleware and all routes.
//
// Middleware order matters: the request id must exist before logging, and
// RealIP must run before the rate limiter reads the client address.
func SetupRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.RateLimitMiddleware(d.RateLimiter))
	r.Use(custommiddleware.MetricsMiddleware(d.Metrics))

	r.Mount("/v1", v1.SetupRoutes(d.Stores))

	r.Get("/health", healthCheckHandler)

	metricsHandler := d.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	return r
}

// healthCheckHandler reports that the process is up
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
