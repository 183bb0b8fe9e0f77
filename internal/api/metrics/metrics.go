// Package metrics defines and registers all custom Prometheus metrics for the
// booking API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// through promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsTotal counts booking attempts by outcome.
// Label:
//   - result: "created", "replayed", "unavailable", "forbidden", "invalid" or "error"
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of booking attempts, by result.",
	},
	[]string{"result"},
)

// AppointmentTransitionsTotal counts successful status changes.
// Label:
//   - to: the status the appointment moved to (e.g. "confirmed")
var AppointmentTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_transitions_total",
		Help:      "Total number of appointment status transitions, by target status.",
	},
	[]string{"to"},
)

// TimeSlotsCreatedTotal counts time slots published by dentists.
var TimeSlotsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "time_slots_created_total",
		Help:      "Total number of time slots created.",
	},
)

// TimeSlotConflictsTotal counts slot creations rejected for overlapping.
var TimeSlotConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "time_slot_conflicts_total",
		Help:      "Total number of time slot creations rejected because of an overlap.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of appointment events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: "recorded", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of appointment events handled by the audit dispatcher, by result.",
	},
	[]string{"result"},
)

// AuditRecordDuration measures how long a single event takes to reach the audit store.
var AuditRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_record_duration_seconds",
		Help:      "Duration of recording one appointment event, from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
