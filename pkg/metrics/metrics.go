package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ViewsRecorded veritabanına yazılan sayfa görüntüleme sayısı.
	ViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invitation_views_recorded_total",
		Help: "Number of invitation page views persisted",
	})

	// ViewsDropped kuyruk dolu olduğu için atılan görüntüleme kayıtları.
	ViewsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invitation_views_dropped_total",
		Help: "Number of invitation page views dropped because the queue was full or closed",
	})

	ViewRecordFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invitation_view_record_failures_total",
		Help: "Number of invitation page views that failed to persist",
	})

	RsvpsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsvp_submissions_total",
		Help: "Number of accepted RSVP submissions",
	})

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)
)
