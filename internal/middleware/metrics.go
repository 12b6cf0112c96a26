package middleware

import (
	"strconv"
	"time"

	"github.com/haierkeys/fast-note-web/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求数与耗时，route 标签取路由模板
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
