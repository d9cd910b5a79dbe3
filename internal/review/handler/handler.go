package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lunchgate/internal/review"
	"lunchgate/pkg/platform/httputil"
	"lunchgate/pkg/requestcontext"
)

// Service defines the interface for lunch order evaluation.
type Service interface {
	Evaluate(ctx context.Context, order review.Order) (*review.Result, error)
}

// Handler wires review endpoints to the review service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a review handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts review endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/lunch/evaluate", h.HandleEvaluate)
}

// HandleEvaluate handles POST /lunch/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Evaluate(ctx, review.Order{
		Employees: req.Employees,
		Menu:      req.LunchMenu,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "lunch order evaluation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "lunch order evaluation served",
		"request_id", requestID,
		"risk_level", result.Assessment.Risk,
		"final_decision", result.Decision.FinalDecision,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
