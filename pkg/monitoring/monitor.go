package monitoring

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnhub_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnhub_api_request_duration_seconds",
			Help:    "Duration of backend API requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SyncJobCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnhub_sync_jobs_total",
			Help: "Background reconciliation jobs by outcome",
		},
		[]string{"entity", "op", "status"},
	)

	SyncQueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "learnhub_sync_queue_depth",
			Help: "Jobs waiting in each sync lane",
		},
		[]string{"entity"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(APIRequestCounter)
		prometheus.MustRegister(APIRequestDuration)
		prometheus.MustRegister(SyncJobCounter)
		prometheus.MustRegister(SyncQueueDepth)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
