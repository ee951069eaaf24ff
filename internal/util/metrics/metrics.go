package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activitiesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_activities_recorded_total",
			Help: "Activity entries written, by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_notifications_total",
			Help: "Notifications created, by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	emailsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_emails_total",
			Help: "Outbound emails, by stage and outcome",
		},
		[]string{"stage", "outcome"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestsTotal,
		requestDuration,
		activitiesRecorded,
		notificationsSent,
		emailsProcessed,
	)
}

// Middleware records request count and latency labelled by route template,
// so "/tasks/:id" stays one series no matter how many tasks exist.
func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		requestsTotal.WithLabelValues(
			ctx.Request.Method,
			path,
			strconv.Itoa(ctx.Writer.Status()),
		).Inc()

		requestDuration.WithLabelValues(
			ctx.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func RecordActivity(activityType string, err error) {
	activitiesRecorded.WithLabelValues(activityType, outcome(err)).Inc()
}

func RecordNotification(notificationType string, err error) {
	notificationsSent.WithLabelValues(notificationType, outcome(err)).Inc()
}

func RecordEmail(stage string, err error) {
	emailsProcessed.WithLabelValues(stage, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}

	return OutcomeSuccess
}
