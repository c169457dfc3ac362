package middleware

import (
	"github.com/SscSPs/voucher_engine/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be counted
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MetricsMiddleware counts requests by route template and response status.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequest(c.Request.Method, route, c.Writer.Status())
	}
}
