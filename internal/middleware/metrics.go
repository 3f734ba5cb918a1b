package middleware

import (
	"scanmenu-platform/internal/metrics"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求数与耗时，path 使用路由模板避免高基数
func Metrics(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := c.Writer.Status()
		status := strconv.Itoa(code)

		metrics.RequestCounter.WithLabelValues(service, c.Request.Method, path, status).Inc()
		metrics.RequestDuration.WithLabelValues(service, c.Request.Method, path, status).Observe(duration)
		if category := metrics.StatusCategory(code); category != "" {
			metrics.StatusCategoryCounter.WithLabelValues(service, category).Inc()
		}
	}
}
