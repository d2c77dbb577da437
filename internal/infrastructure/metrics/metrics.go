package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ingestion metrics
	TransactionsIngested *prometheus.CounterVec
	DuplicatesSkipped    *prometheus.CounterVec
	StatementsRejected   *prometheus.CounterVec
	ExtractionDuration   prometheus.Histogram

	// Insight metrics
	InsightRequests *prometheus.CounterVec
	InsightDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits    *prometheus.CounterVec
	CacheMisses  *prometheus.CounterVec
	CacheFlushes prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ingestion metrics
		TransactionsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_transactions_ingested_total",
				Help: "Total number of transactions ingested by source",
			},
			[]string{"source"},
		),
		DuplicatesSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_duplicates_skipped_total",
				Help: "Total number of duplicate transactions skipped by source",
			},
			[]string{"source"},
		),
		StatementsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_statements_rejected_total",
				Help: "Total number of statement uploads rejected by reason",
			},
			[]string{"reason"},
		),
		ExtractionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finsight_extraction_duration_seconds",
			Help:    "Duration of document extraction calls",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		// Insight metrics
		InsightRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_insight_requests_total",
				Help: "Total insight computations by kind",
			},
			[]string{"kind"},
		),
		InsightDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsight_insight_duration_seconds",
				Help:    "Insight computation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),

		// Cache metrics
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_cache_hits_total",
				Help: "Total cache hits by key",
			},
			[]string{"key"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_cache_misses_total",
				Help: "Total cache misses by key",
			},
			[]string{"key"},
		),
		CacheFlushes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finsight_cache_flushes_total",
			Help: "Total full cache invalidations",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsight_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsight_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "finsight_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
