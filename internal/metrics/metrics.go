package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookinub",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by initial status.",
		},
		[]string{"status"},
	)

	statusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookinub",
			Name:      "booking_status_changes_total",
			Help:      "Count of administrative booking status changes.",
		},
		[]string{"from", "to"},
	)

	httpRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookinub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	storeConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bookinub",
			Name:      "store_connected",
			Help:      "1 when the booking store reported connected on the last health check.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, statusChanges, httpRequests, storeConnected)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncStatusChange(from, to string) {
	statusChanges.WithLabelValues(from, to).Inc()
}

func ObserveRequest(method string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

func SetStoreConnected(connected bool) {
	if connected {
		storeConnected.Set(1)
		return
	}
	storeConnected.Set(0)
}
