package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/todozero/todozero/internal/metrics"
)

// Metrics records request counts and latency per route template, so
// /users/1 and /users/2 share one series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
