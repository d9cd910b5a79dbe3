package memory

import (
	"context"
	"sync"

	audit "lunchgate/pkg/platform/audit"
)

// InMemoryStore is the default audit store. Events are held in append order
// and capped so a long-lived process does not grow without bound.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	cap    int
}

const defaultCap = 1000

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cap: defaultCap}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > s.cap {
		s.events = s.events[len(s.events)-s.cap:]
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.events)
	if limit > n {
		limit = n
	}

	out := make([]audit.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
