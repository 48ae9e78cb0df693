package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/service"
)

// unmatchedRoute labels requests that hit no registered route so scanners
// cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

var probePaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
}

// Metrics records per-route latency and status, skipping probe endpoints.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, probe := probePaths[c.Request.URL.Path]; probe {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
