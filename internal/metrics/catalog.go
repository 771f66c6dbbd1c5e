package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog Prometheus metrics.
var (
	CatalogQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "softhub",
			Name:      "catalog_queries_total",
			Help:      "Total number of catalog queries",
		},
		[]string{"sort", "order", "status"},
	)

	CatalogQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "softhub",
			Name:      "catalog_query_duration_seconds",
			Help:      "Catalog query duration in seconds, storage load included",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"sort"},
	)

	CatalogQueryMatched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "softhub",
			Name:      "catalog_query_matched_results",
			Help:      "Number of listings matching search and category filters",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	DownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "softhub",
			Name:      "downloads_total",
			Help:      "Total number of download redirects",
		},
		[]string{"category"},
	)

	AdminLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "softhub",
			Name:      "admin_logins_total",
			Help:      "Admin login attempts",
		},
		[]string{"outcome"}, // "success" / "failure" / "locked"
	)

	CatalogListings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "softhub",
			Name:      "catalog_listings",
			Help:      "Number of listings in the catalog",
		},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers Prometheus catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogQueriesTotal)
	prometheus.MustRegister(CatalogQueryDuration)
	prometheus.MustRegister(CatalogQueryMatched)
	prometheus.MustRegister(DownloadsTotal)
	prometheus.MustRegister(AdminLoginsTotal)
	prometheus.MustRegister(CatalogListings)
	catalogMetricsRegistered = true
}
