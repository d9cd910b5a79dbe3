package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchgate/internal/policy"
	"lunchgate/pkg/platform/audit"
	"lunchgate/pkg/requestcontext"
)

// stubAssessor returns a fixed assessment.
type stubAssessor struct {
	assessment Assessment
}

func (s *stubAssessor) Assess(context.Context, []string) Assessment {
	return s.assessment
}

// captureAudit records emitted events.
type captureAudit struct {
	events []audit.Event
}

func (c *captureAudit) Emit(_ context.Context, event audit.Event) error {
	c.events = append(c.events, event)
	return nil
}

func TestNewService(t *testing.T) {
	t.Run("requires an assessor", func(t *testing.T) {
		_, err := New(nil, 15, 150)
		assert.Error(t, err)
	})

	t.Run("requires a positive rate", func(t *testing.T) {
		_, err := New(&stubAssessor{}, 0, 150)
		assert.Error(t, err)
	})

	t.Run("rejects a negative budget limit", func(t *testing.T) {
		_, err := New(&stubAssessor{}, 15, -1)
		assert.Error(t, err)
	})
}

func TestEvaluate(t *testing.T) {
	lowRisk := Assessment{
		SanitizedMenu: []string{"Garden salad"},
		Risk:          policy.RiskLow,
		Reasons:       []string{CompliantReason},
	}

	t.Run("normalizes the roster and prices by normalized headcount", func(t *testing.T) {
		svc, err := New(&stubAssessor{assessment: lowRisk}, 15, 150)
		require.NoError(t, err)

		result, err := svc.Evaluate(context.Background(), Order{
			Employees: []string{" Alice ", "Bob", "Alice", ""},
			Menu:      []string{"Garden salad"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Alice", "Bob"}, result.NormalizedEmployees)
		assert.InDelta(t, 30.0, result.Budget.TotalCost, 1e-9)
		assert.True(t, result.Budget.WithinBudget)
	})

	t.Run("stamps the request-scoped evaluation time", func(t *testing.T) {
		svc, err := New(&stubAssessor{assessment: lowRisk}, 15, 150)
		require.NoError(t, err)

		fixed := time.Date(2026, 2, 14, 12, 30, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(context.Background(), fixed)

		result, err := svc.Evaluate(ctx, Order{Employees: []string{"Alice"}, Menu: []string{"Salad"}})
		require.NoError(t, err)
		assert.Equal(t, fixed, result.EvaluatedAt)
	})

	t.Run("emits one audit event per evaluation", func(t *testing.T) {
		sink := &captureAudit{}
		svc, err := New(&stubAssessor{assessment: lowRisk}, 15, 150, WithAuditPublisher(sink))
		require.NoError(t, err)

		ctx := requestcontext.WithRequestID(context.Background(), "req-42")
		_, err = svc.Evaluate(ctx, Order{
			Employees: []string{"Alice", "Bob", "Carol"},
			Menu:      []string{"Garden salad"},
		})
		require.NoError(t, err)

		require.Len(t, sink.events, 1)
		event := sink.events[0]
		assert.Equal(t, audit.ActionOrderEvaluated, event.Action)
		assert.Equal(t, "req-42", event.RequestID)
		assert.Equal(t, 3, event.Headcount)
		assert.Equal(t, "low", event.RiskLevel)
		assert.True(t, event.Approved)
		assert.False(t, event.AdvisoryUsed)
		assert.Equal(t, 1, event.ReasonCount)
	})
}

func TestEvaluateEndToEnd(t *testing.T) {
	t.Run("safe order within budget is fully approved", func(t *testing.T) {
		svc, err := New(NewAssessor(nil), 15, 150)
		require.NoError(t, err)

		result, err := svc.Evaluate(context.Background(), Order{
			Employees: []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"},
			Menu: []string{
				"Grilled chicken",
				"Garden salad",
				"Fruit platter",
				"Veggie wraps",
				"Lemonade",
				"Rice pilaf",
			},
		})
		require.NoError(t, err)

		assert.Len(t, result.NormalizedEmployees, 8)
		assert.InDelta(t, 120.0, result.Budget.TotalCost, 1e-9)
		assert.True(t, result.Budget.WithinBudget)
		assert.Equal(t, policy.RiskLow, result.Assessment.Risk)
		assert.True(t, result.Decision.Approved)
		assert.Equal(t, DecisionApproved, result.Decision.FinalDecision)
		assert.Empty(t, result.Assessment.ThreadID)
		assert.Empty(t, result.Assessment.RunID)
	})

	t.Run("allergen-laden order is rejected regardless of budget", func(t *testing.T) {
		svc, err := New(NewAssessor(nil), 15, 150)
		require.NoError(t, err)

		result, err := svc.Evaluate(context.Background(), Order{
			Employees: []string{
				"E1", "E2", "E3", "E4", "E5", "E6",
				"E7", "E8", "E9", "E10", "E11", "E12",
			},
			Menu: []string{
				"Peanut butter cookies",
				"Shellfish pasta",
				"Garden salad",
				"Chicken skewers",
			},
		})
		require.NoError(t, err)

		assert.Equal(t, policy.RiskHigh, result.Assessment.Risk)
		assert.NotContains(t, result.Assessment.SanitizedMenu, "Peanut butter cookies")
		assert.NotContains(t, result.Assessment.SanitizedMenu, "Shellfish pasta")
		assert.False(t, result.Decision.Approved)
		assert.Equal(t, DecisionRejectedRisk, result.Decision.FinalDecision)
	})

	t.Run("over-budget order with safe menu is rejected for budget", func(t *testing.T) {
		svc, err := New(NewAssessor(nil), 15, 150)
		require.NoError(t, err)

		employees := make([]string, 11)
		for i := range employees {
			employees[i] = string(rune('A' + i))
		}

		result, err := svc.Evaluate(context.Background(), Order{
			Employees: employees,
			Menu:      []string{"Garden salad", "Grilled chicken"},
		})
		require.NoError(t, err)

		assert.InDelta(t, 165.0, result.Budget.TotalCost, 1e-9)
		assert.False(t, result.Budget.WithinBudget)
		assert.False(t, result.Decision.Approved)
		assert.Equal(t, DecisionRejectedBudget, result.Decision.FinalDecision)
	})
}
