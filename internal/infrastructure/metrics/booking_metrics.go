package metrics

import "github.com/prometheus/client_golang/prometheus"

// Booking outcomes used as label values.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// BookingMetrics exposes counters for the appointment lifecycle.
type BookingMetrics struct {
	operations    *prometheus.CounterVec
	purged        prometheus.Counter
	notifications *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uplift",
			Subsystem: "appointments",
			Name:      "operations_total",
			Help:      "Appointment operations by kind and outcome",
		}, []string{"operation", "outcome"}),
		purged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uplift",
			Subsystem: "appointments",
			Name:      "purged_total",
			Help:      "Elapsed appointments removed by the purge sweep",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uplift",
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Booking notifications by delivery status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operations, m.purged, m.notifications)
	return m
}

func (m *BookingMetrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *BookingMetrics) AddPurged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.purged.Add(float64(n))
}

func (m *BookingMetrics) ObserveNotification(status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(status).Inc()
}
