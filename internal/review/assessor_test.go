package review

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchgate/internal/advisory"
	"lunchgate/internal/policy"
)

// stubConsulter returns a canned opinion or error.
type stubConsulter struct {
	opinion *advisory.Opinion
	err     error

	calls   int
	prompts []string
}

func (s *stubConsulter) Consult(_ context.Context, prompt string) (*advisory.Opinion, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.opinion, s.err
}

func TestAssessFallback(t *testing.T) {
	t.Run("nil consulter uses rule-only classification", func(t *testing.T) {
		a := NewAssessor(nil)

		got := a.Assess(context.Background(), []string{"Peanut butter cookies", "Garden salad"})

		assert.Equal(t, policy.RiskHigh, got.Risk)
		assert.False(t, got.AdvisoryUsed())
		assert.Empty(t, got.ThreadID)
		assert.Empty(t, got.RunID)
	})

	t.Run("fallback classification matches the policy ruleset", func(t *testing.T) {
		menus := [][]string{
			{"Garden salad", "Grilled chicken"},
			{"Peanut butter cookies", "Rice"},
			{"Whiskey tasting", "Garden salad"},
			{"Burgers", "Fries"},
			{"Pork belly", "Bacon rolls", "Ham sandwiches", "Salad"},
			{},
		}
		a := NewAssessor(nil)

		for _, menu := range menus {
			got := a.Assess(context.Background(), menu)

			sanitized, _ := policy.Sanitize(menu)
			inclusivity := policy.InclusivityFindings(sanitized)
			want := policy.Classify(menu, len(inclusivity) > 0)

			assert.Equal(t, want, got.Risk, "menu %v", menu)
		}
	})

	t.Run("advisory failure falls back without identifiers", func(t *testing.T) {
		for _, sentinel := range []error{
			advisory.ErrUnavailable,
			advisory.ErrFailed,
			advisory.ErrTimeout,
			advisory.ErrEmptyResponse,
		} {
			consulter := &stubConsulter{err: fmt.Errorf("consult: %w", sentinel)}
			a := NewAssessor(consulter)

			got := a.Assess(context.Background(), []string{"Shellfish pasta"})

			assert.Equal(t, 1, consulter.calls)
			assert.Equal(t, policy.RiskHigh, got.Risk, "sentinel %v", sentinel)
			assert.False(t, got.AdvisoryUsed(), "sentinel %v", sentinel)
		}
	})
}

func TestAssessAdvisoryPath(t *testing.T) {
	t.Run("advisory opinion drives classification and carries identifiers", func(t *testing.T) {
		consulter := &stubConsulter{opinion: &advisory.Opinion{
			Text:     "This menu is high risk: it contains tobacco products and no vegetarian options.",
			ThreadID: "thread_abc",
			RunID:    "run_def",
		}}
		a := NewAssessor(consulter)

		got := a.Assess(context.Background(), []string{"Mystery platter"})

		assert.Equal(t, policy.RiskHigh, got.Risk)
		assert.Equal(t, "thread_abc", got.ThreadID)
		assert.Equal(t, "run_def", got.RunID)
		assert.True(t, got.AdvisoryUsed())
	})

	t.Run("sanitizer violations merge with advisory reasons", func(t *testing.T) {
		consulter := &stubConsulter{opinion: &advisory.Opinion{
			Text:     "Low risk overall, good vegetarian coverage.",
			ThreadID: "thread_1",
			RunID:    "run_1",
		}}
		a := NewAssessor(consulter)

		got := a.Assess(context.Background(), []string{"Peanut butter cookies", "Garden salad"})

		assert.NotContains(t, got.SanitizedMenu, "Peanut butter cookies")
		assert.Contains(t, got.Reasons, "Major allergen risk removed from menu: Peanut butter cookies")
	})

	t.Run("prompt describes every menu item", func(t *testing.T) {
		consulter := &stubConsulter{opinion: &advisory.Opinion{Text: "vegetarian, low risk", ThreadID: "t", RunID: "r"}}
		a := NewAssessor(consulter)

		a.Assess(context.Background(), []string{"Garden salad", "Lemonade"})

		require.Len(t, consulter.prompts, 1)
		assert.Contains(t, consulter.prompts[0], "Garden salad")
		assert.Contains(t, consulter.prompts[0], "Lemonade")
	})
}

func TestAssessReasons(t *testing.T) {
	t.Run("clean menu yields the compliant reason", func(t *testing.T) {
		a := NewAssessor(nil)

		got := a.Assess(context.Background(), []string{"Garden salad", "Grilled chicken"})

		assert.Equal(t, []string{CompliantReason}, got.Reasons)
	})

	t.Run("duplicate reasons collapse preserving first occurrence", func(t *testing.T) {
		merged := mergeReasons(
			[]string{"a", "b"},
			[]string{"b", "c", ""},
			[]string{"a"},
		)
		assert.Equal(t, []string{"a", "b", "c"}, merged)
	})
}
