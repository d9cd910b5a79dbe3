// Package review implements the lunch-order review pipeline: participant
// normalization, hybrid risk assessment, budget evaluation, and the final
// precedence-based decision.
package review

import (
	"time"

	"lunchgate/internal/budget"
	"lunchgate/internal/policy"
)

// Order is one lunch order submitted for review.
type Order struct {
	Employees []string
	Menu      []string
}

// Assessment is the outcome of the risk stage. ThreadID and RunID are set
// only when the advisory path actually completed; their absence signals that
// the rule-only fallback produced the classification.
type Assessment struct {
	SanitizedMenu []string
	Risk          policy.RiskLevel
	Reasons       []string
	ThreadID      string
	RunID         string
}

// AdvisoryUsed reports whether an advisory opinion informed this assessment.
func (a Assessment) AdvisoryUsed() bool {
	return a.ThreadID != "" || a.RunID != ""
}

// Decision is the final verdict for an order.
type Decision struct {
	Approved      bool
	Message       string
	FinalDecision string
}

// Result aggregates every stage output for one pipeline invocation. One
// instance per invocation; nothing is shared or cached across runs.
type Result struct {
	NormalizedEmployees []string
	Assessment          Assessment
	Budget              budget.Result
	Decision            Decision
	EvaluatedAt         time.Time
}

// CompliantReason is recorded when no rule or advisory signal fired.
const CompliantReason = "Menu complies with company policy"
