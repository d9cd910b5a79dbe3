package review

import (
	"fmt"
	"strings"

	"lunchgate/internal/budget"
	"lunchgate/internal/policy"
)

// Final-decision narratives. Precedence is fixed: high risk outranks budget,
// budget outranks medium risk.
const (
	DecisionRejectedRisk   = "rejected for health/safety risk"
	DecisionRejectedBudget = "rejected for budget constraints"
	DecisionCaution        = "approved with caution"
	DecisionApproved       = "fully approved"
)

// Decide derives the final verdict from the risk assessment and the budget
// result. First matching rule wins; no other state is consulted.
func Decide(assessment Assessment, budget budget.Result) Decision {
	switch {
	case assessment.Risk == policy.RiskHigh:
		return Decision{
			Approved:      false,
			Message:       fmt.Sprintf("Order rejected due to health and safety concerns: %s", strings.Join(assessment.Reasons, "; ")),
			FinalDecision: DecisionRejectedRisk,
		}

	case !budget.WithinBudget:
		return Decision{
			Approved: false,
			Message: fmt.Sprintf("Order rejected: total cost $%.2f exceeds the $%.2f budget",
				budget.TotalCost, budget.BudgetLimit),
			FinalDecision: DecisionRejectedBudget,
		}

	case assessment.Risk == policy.RiskMedium:
		return Decision{
			Approved: true,
			Message: fmt.Sprintf("Order approved with caution, please review the sanitized menu manually: %s",
				strings.Join(assessment.Reasons, "; ")),
			FinalDecision: DecisionCaution,
		}

	default:
		return Decision{
			Approved: true,
			Message: fmt.Sprintf("Order approved: total cost $%.2f is within the $%.2f budget",
				budget.TotalCost, budget.BudgetLimit),
			FinalDecision: DecisionApproved,
		}
	}
}
