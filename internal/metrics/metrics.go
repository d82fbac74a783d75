package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Datastore Metrics
	DatastoreQueriesTotal  *prometheus.CounterVec
	DatastoreQueryDuration *prometheus.HistogramVec

	// Search Metrics
	StoreSearchesTotal  *prometheus.CounterVec
	SearchResultSize    prometheus.Histogram
	SearchErrorsTotal   *prometheus.CounterVec
	GeocodeLookupsTotal *prometheus.CounterVec
	ProvinceRecords     prometheus.Gauge
}

// New registers all metrics with the default Prometheus registry.
// Call it once per process.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers all metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint"},
		),

		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint", "status"},
		),

		DatastoreQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datastore_queries_total",
				Help: "Total number of datastore queries",
			},
			[]string{"datastore", "operation", "status"},
		),

		DatastoreQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "datastore_query_duration_seconds",
				Help:    "Datastore query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"datastore", "operation"},
		),

		StoreSearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_searches_total",
				Help: "Total number of store searches by outcome",
			},
			[]string{"result"},
		),

		SearchResultSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "store_search_result_size",
				Help:    "Number of stores returned per search",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),

		SearchErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_search_errors_total",
				Help: "Total number of failed store searches",
			},
			[]string{"error_type"},
		),

		GeocodeLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geocode_lookups_total",
				Help: "Total number of reverse geocoding lookups by outcome",
			},
			[]string{"result"},
		),

		ProvinceRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "province_reference_records",
				Help: "Number of province records in the loaded reference table",
			},
		),
	}
}
