package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartclass_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request processing time per route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smartclass_http_request_duration_seconds",
		Help:    "Histogram of HTTP request processing duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// KeysIssuedTotal counts access keys minted, by operation
	KeysIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartclass_access_keys_issued_total",
		Help: "Total number of tenant access keys issued",
	}, []string{"operation"})

	// RedemptionsTotal counts redemption attempts by outcome
	RedemptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartclass_redemptions_total",
		Help: "Total number of access key redemption attempts",
	}, []string{"result"})
)
