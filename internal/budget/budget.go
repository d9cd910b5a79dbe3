// Package budget evaluates order cost against the fixed spending policy.
package budget

// Result captures the cost evaluation for one order.
type Result struct {
	TotalCost     float64
	BudgetLimit   float64
	WithinBudget  bool
	PerPersonRate float64
}

// Evaluate computes the total order cost from headcount and the per-person
// rate, and compares it to the budget limit. The limit is an independent
// policy constant, not derived from the submitted headcount: a larger group
// than planned is exactly what pushes an order over budget. Zero headcount
// costs nothing and is trivially within budget.
func Evaluate(headcount int, perPersonRate, budgetLimit float64) Result {
	total := float64(headcount) * perPersonRate

	return Result{
		TotalCost:     total,
		BudgetLimit:   budgetLimit,
		WithinBudget:  total <= budgetLimit,
		PerPersonRate: perPersonRate,
	}
}
