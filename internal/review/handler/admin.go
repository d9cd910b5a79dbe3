package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "lunchgate/pkg/domain-errors"
	"lunchgate/pkg/platform/audit"
	"lunchgate/pkg/platform/httputil"
)

// RecentLister reads back recent decision audit events.
type RecentLister interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// AdminHandler serves operator read-back endpoints. Audit events feed
// nothing back into decisions; these endpoints exist for humans.
type AdminHandler struct {
	events RecentLister
	logger *slog.Logger
}

func NewAdmin(events RecentLister, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{events: events, logger: logger}
}

// Register mounts admin endpoints on the router.
func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/admin/decisions/recent", h.HandleRecentDecisions)
}

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// HandleRecentDecisions handles GET /admin/decisions/recent requests.
func (h *AdminHandler) HandleRecentDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer"))
			return
		}
		limit = min(parsed, maxRecentLimit)
	}

	events, err := h.events.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "recent decisions lookup failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list recent decisions"))
		return
	}

	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"decisions": events,
		"count":     len(events),
	})
}
