package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/events"
)

// PublisherStub records published envelopes.
type PublisherStub struct {
	sync.Mutex
	Events []events.Envelope
}

// Publish appends event to the recorded list.
func (p *PublisherStub) Publish(_ context.Context, event events.Envelope) {
	p.Lock()
	defer p.Unlock()
	p.Events = append(p.Events, event)
}

// Types returns recorded event types in publication order.
func (p *PublisherStub) Types() []string {
	p.Lock()
	defer p.Unlock()
	types := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.EventType)
	}
	return types
}

// SinkStub records delivered envelopes and optionally fails or blocks.
type SinkStub struct {
	sync.Mutex
	Delivered []events.Envelope
	Err       error
	Block     chan struct{}
	Closed    bool
}

// Publish records event unless Err is set. When Block is non-nil it waits for it first.
func (s *SinkStub) Publish(ctx context.Context, event events.Envelope) error {
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.Lock()
	defer s.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Delivered = append(s.Delivered, event)
	return nil
}

// Close marks sink closed.
func (s *SinkStub) Close() error {
	s.Lock()
	defer s.Unlock()
	s.Closed = true
	return nil
}

// Count returns number of delivered events.
func (s *SinkStub) Count() int {
	s.Lock()
	defer s.Unlock()
	return len(s.Delivered)
}
