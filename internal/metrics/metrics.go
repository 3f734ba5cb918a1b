package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter HTTP 请求总数
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDuration HTTP 请求耗时
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// StatusCategoryCounter 按 2xx/4xx/5xx 分类的响应数
	StatusCategoryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"service", "category"},
	)

	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menulinks_created_total",
		Help: "Total number of menu links created",
	})

	SlugCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menulink_slug_collisions_total",
		Help: "Slug uniqueness violations hit while writing menu links",
	})

	// VisitsRecorded result: recorded / skipped_inactive / failed
	VisitsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visits_recorded_total",
			Help: "Visit recording attempts by result",
		},
		[]string{"result"},
	)

	VisitsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visits_purged_total",
		Help: "Visits removed by the retention purge",
	})
)

// StatusCategory 返回状态码分类，非 2xx/4xx/5xx 返回空串
func StatusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// Handler 暴露 Prometheus 指标
func Handler() http.Handler {
	return promhttp.Handler()
}
