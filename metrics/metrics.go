package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studiobook",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	statusChange = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studiobook",
			Name:      "booking_status_change_total",
			Help:      "Count of booking status transitions by target status.",
		},
		[]string{"status"},
	)

	slotConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studiobook",
			Name:      "slot_conflict_total",
			Help:      "Count of booking attempts rejected at commit time because the slot was taken.",
		},
	)

	slotsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studiobook",
			Name:      "slots_served_total",
			Help:      "Count of availability responses by source (cache or computed).",
		},
		[]string{"source"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, statusChange, slotConflict, slotsServed)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncStatusChange(status string) {
	statusChange.WithLabelValues(status).Inc()
}

func IncSlotConflict() {
	slotConflict.Inc()
}

func IncSlotsServed(source string) {
	slotsServed.WithLabelValues(source).Inc()
}
