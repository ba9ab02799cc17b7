package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"smartclass24.backend/internal/infrastructure/metrics"
)

// MetricsMiddleware records per-route request counts and latency. Routes
// are labeled by their registered pattern, not the raw URL, so path
// parameters do not explode the label space.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
