package events

import (
	"context"
	"log/slog"
)

// Sink delivers envelopes to their destination.
type Sink interface {
	Publish(ctx context.Context, event Envelope) error
	Close() error
}

// LogSink writes events to the application log. Used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink constructs LogSink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, event Envelope) error {
	s.logger.Info("order event",
		slog.String("event_id", event.EventID),
		slog.String("event_type", event.EventType),
		slog.String("order_id", event.OrderID),
		slog.Int64("order_number", event.OrderNumber),
		slog.String("status", event.Payload.Status),
		slog.String("total", event.Payload.TotalAmount),
	)
	return nil
}

func (s *LogSink) Close() error { return nil }
