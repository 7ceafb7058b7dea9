package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-api/internal/shared/metrics"
)

// Metrics records request counts and latency. The scrape endpoint
// itself is not counted.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		metrics.IncRequest()
		metrics.ObserveRequestDurationMs(metrics.SinceMillis(start))
		if c.Writer.Status() >= http.StatusInternalServerError {
			metrics.IncRequestError()
		}
	}
}
