package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	t.Run("removes allergen and keeps safe items", func(t *testing.T) {
		sanitized, violations := Sanitize([]string{"Peanut butter cookies", "Quinoa bowl"})

		assert.Equal(t, []string{"Quinoa bowl"}, sanitized)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "Peanut butter cookies")
		assert.Contains(t, violations[0], "allergen")
	})

	t.Run("first matching check wins for multi-violation items", func(t *testing.T) {
		// Names both a prohibited substance and an allergen; only the
		// substance check records a violation.
		sanitized, violations := Sanitize([]string{"Tobacco peanut brittle"})

		assert.Empty(t, sanitized)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "Prohibited substance")
	})

	t.Run("alcohol checked before allergen", func(t *testing.T) {
		_, violations := Sanitize([]string{"Vodka shrimp skewers"})

		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "Restricted alcohol")
	})

	t.Run("sanitized menu is an order-preserving subsequence", func(t *testing.T) {
		menu := []string{"Salad", "Vodka shots", "Rice", "Cigars", "Soup"}
		sanitized, violations := Sanitize(menu)

		assert.Equal(t, []string{"Salad", "Rice", "Soup"}, sanitized)
		assert.Len(t, violations, 2)
	})

	t.Run("original casing preserved", func(t *testing.T) {
		sanitized, _ := Sanitize([]string{"GaRdEn SaLaD"})
		assert.Equal(t, []string{"GaRdEn SaLaD"}, sanitized)
	})

	t.Run("every removed item has exactly one violation", func(t *testing.T) {
		menu := []string{"Vodka shots", "Peanut butter cookies", "Cigarettes", "Rice"}
		sanitized, violations := Sanitize(menu)

		assert.Len(t, violations, len(menu)-len(sanitized))
	})

	t.Run("empty menu yields empty results", func(t *testing.T) {
		sanitized, violations := Sanitize(nil)
		assert.Empty(t, sanitized)
		assert.Empty(t, violations)
	})
}
