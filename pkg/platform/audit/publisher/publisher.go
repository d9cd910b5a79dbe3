package publisher

import (
	"context"
	"errors"
	"sync"
	"time"

	audit "lunchgate/pkg/platform/audit"
)

// ErrBufferFull is returned in async mode when the event buffer is saturated.
// Audit emission is best-effort; callers log and move on.
var ErrBufferFull = errors.New("audit buffer full")

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event audit.Event) error
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Publisher writes audit events to a store, either synchronously or through
// a buffered channel drained by a background worker.
type Publisher struct {
	store Store

	events chan audit.Event
	done   chan struct{}
	once   sync.Once
}

type Option func(p *Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given
// buffer size. Events are dropped with ErrBufferFull when the buffer is
// saturated; Close drains whatever is buffered.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.events = make(chan audit.Event, size)
	}
}

// NewPublisher constructs a Publisher around a store.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}

	if p.events != nil {
		p.done = make(chan struct{})
		go p.drain()
	}
	return p
}

// Emit records one event. A zero timestamp is stamped with the current time.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if p.events == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// ListRecent returns the most recent events, newest first.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close stops the async worker and drains any buffered events. Safe to call
// in sync mode and safe to call more than once.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.events == nil {
			return
		}
		close(p.events)
		<-p.done
	})
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.events {
		// Store failures in async mode have no caller to report to.
		_ = p.store.Append(context.Background(), event)
	}
}
