package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightsmile/booking-api/internal/api/metrics"
	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 10 * time.Second
)

// Dispatcher hands appointment events to a fixed set of workers using
// consistent hashing on the appointment id, so the events of one appointment
// are recorded in the order they were published.
type Dispatcher struct {
	workers []chan domain.AppointmentEvent
	audit   ports.AuditService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AppointmentEvent, numWorkers),
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AppointmentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and stop
// when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish queues an event for its appointment's worker. It never blocks: when
// the worker is saturated the event is dropped and counted.
func (d *Dispatcher) Publish(event domain.AppointmentEvent) {
	idx := d.shardIndex(event.AppointmentID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("event_id", event.ID).
			Int64("appointment_id", event.AppointmentID).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an appointment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(appointmentID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(appointmentID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AppointmentEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			d.drain(id, label, ch)
			return
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Dec()
			d.record(ctx, id, event)
		}
	}
}

// drain records what is already queued using a fresh context, so events
// accepted before shutdown still reach the audit store.
func (d *Dispatcher) drain(id int, label string, ch <-chan domain.AppointmentEvent) {
	for {
		select {
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Dec()
			d.record(context.Background(), id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, event domain.AppointmentEvent) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	start := time.Now()
	err := d.audit.Record(ctx, event)
	metrics.AuditRecordDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("event_id", event.ID).
			Int64("appointment_id", event.AppointmentID).
			Int("worker_id", id).
			Msg("appointment event recording failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues("recorded").Inc()
}
