// Package http wires the HTTP surface of the insights service.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finsight/internal/adapter/http/handler"
	"github.com/iho/finsight/internal/adapter/http/middleware"
	"github.com/iho/finsight/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	InsightHandler     *handler.InsightHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
	Metrics            *metrics.Metrics
	RateLimiter        *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/insights", func(r chi.Router) {
			r.Get("/summary", cfg.InsightHandler.Summary)
			r.Get("/categories", cfg.InsightHandler.Categories)
			r.Get("/monthly", cfg.InsightHandler.Monthly)
			r.Get("/recurring", cfg.InsightHandler.Recurring)
			r.Get("/anomalies", cfg.InsightHandler.Anomalies)
			r.Get("/forecast", cfg.InsightHandler.Forecast)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.TransactionHandler.List)
			r.Post("/upload-csv", cfg.TransactionHandler.UploadCSV)
			r.Post("/upload-pdf", cfg.TransactionHandler.UploadPDF)
			r.Get("/export/csv", cfg.TransactionHandler.ExportCSV)
		})
	})

	return r
}
