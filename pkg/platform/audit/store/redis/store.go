package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	audit "lunchgate/pkg/platform/audit"
)

const (
	// auditKey holds the event list, newest first.
	auditKey = "lunchgate:audit:decisions"

	// maxEvents caps the list length; older entries are trimmed away.
	maxEvents = 1000
)

// Store persists audit events in a capped Redis list. Events are JSON
// encoded and pushed to the head, so reads come back newest first without
// sorting.
type Store struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *Store {
	return &Store{client: client}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, auditKey, payload)
	pipe.LTrim(ctx, auditKey, 0, maxEvents-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	raw, err := s.client.LRange(ctx, auditKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	events := make([]audit.Event, 0, len(raw))
	for _, entry := range raw {
		var event audit.Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}
