package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "lunchgate/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("lists newest first with a limit", func(t *testing.T) {
		store := NewInMemoryStore()
		for _, level := range []string{"low", "medium", "high"} {
			require.NoError(t, store.Append(ctx, audit.Event{RiskLevel: level}))
		}

		events, err := store.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "high", events[0].RiskLevel)
		assert.Equal(t, "medium", events[1].RiskLevel)
	})

	t.Run("limit larger than history returns everything", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Append(ctx, audit.Event{RiskLevel: "low"}))

		events, err := store.ListRecent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("history is capped", func(t *testing.T) {
		store := NewInMemoryStore()
		for i := range defaultCap + 10 {
			require.NoError(t, store.Append(ctx, audit.Event{RequestID: fmt.Sprintf("req-%d", i)}))
		}

		events, err := store.ListRecent(ctx, defaultCap+10)
		require.NoError(t, err)
		assert.Len(t, events, defaultCap)
		assert.Equal(t, fmt.Sprintf("req-%d", defaultCap+9), events[0].RequestID)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Append(ctx, audit.Event{RiskLevel: "low"}))
		store.Clear()

		events, err := store.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
