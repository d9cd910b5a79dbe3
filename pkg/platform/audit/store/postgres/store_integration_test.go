//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "lunchgate/pkg/platform/audit"
	"lunchgate/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store := New(pc.DB)
	ctx := context.Background()

	require.NoError(t, store.EnsureSchema(ctx))

	truncate := func() {
		_, err := pc.DB.ExecContext(ctx, "TRUNCATE lunch_audit_events")
		require.NoError(t, err)
	}

	t.Run("schema application is idempotent", func(t *testing.T) {
		require.NoError(t, store.EnsureSchema(ctx))
	})

	t.Run("round-trips every field", func(t *testing.T) {
		truncate()

		want := audit.Event{
			Timestamp:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			RequestID:     "req-123",
			ClientIP:      "10.0.0.7",
			Client:        "Firefox 125 (Linux)",
			Action:        audit.ActionOrderEvaluated,
			Headcount:     12,
			RiskLevel:     "high",
			FinalDecision: "rejected for health/safety risk",
			Approved:      false,
			AdvisoryUsed:  true,
			ReasonCount:   3,
		}
		require.NoError(t, store.Append(ctx, want))

		events, err := store.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)

		got := events[0]
		assert.True(t, got.Timestamp.Equal(want.Timestamp))
		got.Timestamp = want.Timestamp
		assert.Equal(t, want, got)
	})

	t.Run("lists newest first with a limit", func(t *testing.T) {
		truncate()

		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		for i, level := range []string{"low", "medium", "high"} {
			err := store.Append(ctx, audit.Event{
				Timestamp: base.Add(time.Duration(i) * time.Minute),
				Action:    audit.ActionOrderEvaluated,
				RiskLevel: level,
			})
			require.NoError(t, err)
		}

		events, err := store.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "high", events[0].RiskLevel)
		assert.Equal(t, "medium", events[1].RiskLevel)
	})

	t.Run("empty table lists nothing", func(t *testing.T) {
		truncate()

		events, err := store.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
