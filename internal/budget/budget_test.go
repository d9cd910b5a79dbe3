package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		headcount  int
		rate       float64
		limit      float64
		wantTotal  float64
		wantWithin bool
	}{
		{
			name:      "under budget",
			headcount: 8, rate: 15, limit: 150,
			wantTotal: 120, wantWithin: true,
		},
		{
			name:      "exactly at budget is within",
			headcount: 10, rate: 15, limit: 150,
			wantTotal: 150, wantWithin: true,
		},
		{
			name:      "over budget",
			headcount: 12, rate: 15, limit: 150,
			wantTotal: 180, wantWithin: false,
		},
		{
			name:      "zero headcount is free and within budget",
			headcount: 0, rate: 15, limit: 150,
			wantTotal: 0, wantWithin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.headcount, tt.rate, tt.limit)
			assert.Equal(t, tt.wantTotal, got.TotalCost)
			assert.Equal(t, tt.wantWithin, got.WithinBudget)
			assert.Equal(t, tt.limit, got.BudgetLimit)
			assert.Equal(t, tt.rate, got.PerPersonRate)
		})
	}
}

func TestEvaluateMonotonic(t *testing.T) {
	// Increasing headcount with rate and limit fixed can only flip
	// withinBudget from true to false, never back.
	const rate, limit = 15.0, 150.0

	previous := true
	for headcount := 0; headcount <= 30; headcount++ {
		within := Evaluate(headcount, rate, limit).WithinBudget
		if !previous {
			assert.False(t, within, "withinBudget regressed at headcount %d", headcount)
		}
		previous = within
	}
}
