package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodex2",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled, by route and status code.",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "foodex2",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	warningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodex2",
		Name:      "validation_warnings_total",
		Help:      "Warnings emitted by expression validation, by the overall severity of the result that carried them.",
	}, []string{"severity"})
)

// metricsMiddleware records request count and latency for every route.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// observeWarnings adds a result's warning count under the result's overall
// severity label; the individual warnings' severities are not broken out.
func observeWarnings(severity string, count int) {
	if count <= 0 {
		return
	}
	warningsTotal.WithLabelValues(severity).Add(float64(count))
}
