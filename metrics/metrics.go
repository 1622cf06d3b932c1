// Package metrics registers the Prometheus collectors of the service:
// HTTP traffic, report parsing outcomes, webhook calls and the report cache.
// All collectors live in the default registry, served on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 30, 120},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	ReportsParsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_parse_total",
			Help: "Parsed reports by whether every section came out empty",
		},
		[]string{"all_empty"},
	)

	SectionRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_section_records_total",
			Help: "Records extracted per section and strategy",
		},
		[]string{"section", "strategy"},
	)

	SectionSkipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_section_skips_total",
			Help: "Rows dropped per section and reason",
		},
		[]string{"section", "reason"},
	)

	WebhookRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Automation webhook calls by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	WebhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_request_duration_seconds",
			Help:    "Automation webhook latency",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 40, 60, 90, 120},
		},
		[]string{"kind"},
	)

	ReportCacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "report_cache_entries",
			Help: "Reports currently held in the local cache",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestTotals,
		HTTPRequestDuration,
		HTTPRequestInFlight,
		RateLimiterBucketsTotal,
		ReportsParsedTotal,
		SectionRecordsTotal,
		SectionSkipsTotal,
		WebhookRequestsTotal,
		WebhookDuration,
		ReportCacheEntries,
	)
}
