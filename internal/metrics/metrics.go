package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_created_total",
			Help:      "Count of appointments booked.",
		},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_rejected_total",
			Help:      "Count of booking requests rejected, by error kind.",
		},
		[]string{"kind"},
	)

	statusTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "appointment_transition_total",
			Help:      "Count of appointment status changes, by target status.",
		},
		[]string{"status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingRejected, statusTransition)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingRejected(kind string) {
	if kind == "" {
		kind = "internal"
	}
	bookingRejected.WithLabelValues(kind).Inc()
}

func IncTransition(status string) {
	statusTransition.WithLabelValues(status).Inc()
}
