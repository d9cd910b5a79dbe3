package handler

import (
	dErrors "lunchgate/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /lunch/evaluate.
// Both fields are mandatory; the service tolerates empty arrays but not
// absent ones.
type EvaluateRequest struct {
	Employees []string `json:"employees"`
	LunchMenu []string `json:"lunchMenu"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Employees == nil {
		return dErrors.New(dErrors.CodeValidation, "employees is required and must be an array")
	}
	if r.LunchMenu == nil {
		return dErrors.New(dErrors.CodeValidation, "lunchMenu is required and must be an array")
	}
	return nil
}
