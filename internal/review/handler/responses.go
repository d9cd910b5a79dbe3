package handler

import (
	"lunchgate/internal/review"
)

// EvaluateResponse is the HTTP response for POST /lunch/evaluate.
type EvaluateResponse struct {
	NormalizedEmployees []string               `json:"normalizedEmployees"`
	RiskAssessment      RiskAssessmentResponse `json:"riskAssessment"`
	BudgetCheck         BudgetCheckResponse    `json:"budgetCheck"`
	Decision            DecisionResponse       `json:"decision"`
}

// RiskAssessmentResponse is the risk portion of the response. ThreadID and
// RunID appear only when the advisory path completed.
type RiskAssessmentResponse struct {
	SanitizedMenu []string `json:"sanitizedMenu"`
	RiskLevel     string   `json:"riskLevel"`
	Reasons       []string `json:"reasons"`
	ThreadID      string   `json:"threadId,omitempty"`
	RunID         string   `json:"runId,omitempty"`
}

// BudgetCheckResponse is the budget portion of the response.
type BudgetCheckResponse struct {
	TotalCost     float64 `json:"totalCost"`
	Budget        float64 `json:"budget"`
	WithinBudget  bool    `json:"withinBudget"`
	CostPerPerson float64 `json:"costPerPerson"`
}

// DecisionResponse is the verdict portion of the response.
type DecisionResponse struct {
	Approved      bool   `json:"approved"`
	Message       string `json:"message"`
	FinalDecision string `json:"finalDecision"`
}

// FromResult converts a pipeline result to an HTTP response. Nil slices are
// rendered as empty arrays so clients always receive sequences.
func FromResult(result *review.Result) *EvaluateResponse {
	return &EvaluateResponse{
		NormalizedEmployees: emptyIfNil(result.NormalizedEmployees),
		RiskAssessment: RiskAssessmentResponse{
			SanitizedMenu: emptyIfNil(result.Assessment.SanitizedMenu),
			RiskLevel:     string(result.Assessment.Risk),
			Reasons:       emptyIfNil(result.Assessment.Reasons),
			ThreadID:      result.Assessment.ThreadID,
			RunID:         result.Assessment.RunID,
		},
		BudgetCheck: BudgetCheckResponse{
			TotalCost:     result.Budget.TotalCost,
			Budget:        result.Budget.BudgetLimit,
			WithinBudget:  result.Budget.WithinBudget,
			CostPerPerson: result.Budget.PerPersonRate,
		},
		Decision: DecisionResponse{
			Approved:      result.Decision.Approved,
			Message:       result.Decision.Message,
			FinalDecision: result.Decision.FinalDecision,
		},
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
