package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ordersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders placed by payment method",
		},
		[]string{"payment_method"},
	)

	orderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Order status changes by target status",
		},
		[]string{"status"},
	)

	guestCheckins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guest_checkins_total",
			Help: "Check-in attempts by result",
		},
		[]string{"result"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Staff login attempts by result",
		},
		[]string{"result"},
	)

	notificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_notification_failures_total",
			Help: "Order notifications that could not be published",
		},
	)
)

func ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func TrackOrderCreated(paymentMethod string) {
	ordersCreated.WithLabelValues(paymentMethod).Inc()
}

func TrackOrderTransition(status string) {
	orderTransitions.WithLabelValues(status).Inc()
}

func TrackCheckin(result string) {
	guestCheckins.WithLabelValues(result).Inc()
}

func TrackLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	loginAttempts.WithLabelValues(result).Inc()
}

func TrackNotificationFailure() {
	notificationFailures.Inc()
}
