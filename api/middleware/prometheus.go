package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	chatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages processed",
		},
		[]string{"direction", "status", "service"},
	)

	queryExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_executions_total",
			Help: "Total number of console query executions",
		},
		[]string{"status", "service"},
	)

	queryExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_execution_duration_seconds",
			Help:    "Duration of console query executions in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service"},
	)
)

func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
			serviceName,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			serviceName,
		).Observe(duration)
	}
}

// RecordChatMessage учитывает сообщение чата, direction - sent/received/dropped
func RecordChatMessage(direction, status, serviceName string) {
	chatMessagesTotal.WithLabelValues(direction, status, serviceName).Inc()
}

// RecordQueryExecution учитывает выполнение запроса консоли
func RecordQueryExecution(status, serviceName string, duration time.Duration) {
	queryExecutionsTotal.WithLabelValues(status, serviceName).Inc()
	queryExecutionDuration.WithLabelValues(serviceName).Observe(duration.Seconds())
}
