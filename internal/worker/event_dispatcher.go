package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/events"
)

const defaultPublishTimeout = 5 * time.Second

// EventDispatcher publishes committed order events to the sink concurrently.
// Publish never blocks the caller: when the queue is full the event is dropped and logged.
type EventDispatcher struct {
	sink           events.Sink
	workers        int
	publishTimeout time.Duration
	logger         *slog.Logger

	jobs    chan events.Envelope
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewEventDispatcher constructs event dispatcher worker pool.
func NewEventDispatcher(sink events.Sink, buffer, workers int, logger *slog.Logger) *EventDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &EventDispatcher{
		sink:           sink,
		workers:        workers,
		publishTimeout: defaultPublishTimeout,
		logger:         logger,
		jobs:           make(chan events.Envelope, buffer),
	}
}

// Start launches background publishing.
func (d *EventDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop drains queued events and waits for all workers to finish.
func (d *EventDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
}

// Publish enqueues event for asynchronous delivery.
func (d *EventDispatcher) Publish(_ context.Context, event events.Envelope) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		d.logger.Warn("event dropped after shutdown", slog.String("event_type", event.EventType), slog.String("order_id", event.OrderID))
		return
	}

	select {
	case d.jobs <- event:
	default:
		d.logger.Warn("event queue full, dropping event", slog.String("event_type", event.EventType), slog.String("order_id", event.OrderID))
	}
}

func (d *EventDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for event := range d.jobs {
		d.handleEvent(ctx, event)
	}
}

func (d *EventDispatcher) handleEvent(ctx context.Context, event events.Envelope) {
	publishCtx, cancel := context.WithTimeout(ctx, d.publishTimeout)
	defer cancel()

	if err := d.sink.Publish(publishCtx, event); err != nil {
		d.logger.Error("publish order event failed",
			slog.String("event_id", event.EventID),
			slog.String("event_type", event.EventType),
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}
