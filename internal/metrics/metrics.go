package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "floorten",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by room.",
		},
		[]string{"room"},
	)

	bookingConflict = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "floorten",
			Name:      "booking_conflict_total",
			Help:      "Count of booking attempts rejected due to a conflict.",
		},
		[]string{"room"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "floorten",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by their owners.",
		},
	)

	recurringOutcome = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "floorten",
			Name:      "recurring_occurrence_total",
			Help:      "Count of recurring booking occurrences by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflict, bookingCancelled, recurringOutcome)
	})
}

func IncBookingCreated(room string) {
	bookingCreated.WithLabelValues(room).Inc()
}

func IncBookingConflict(room string) {
	bookingConflict.WithLabelValues(room).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func AddRecurringOutcome(outcome string, n int) {
	recurringOutcome.WithLabelValues(outcome).Add(float64(n))
}
