package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models/dto"
)

// NavigationHandler exposes the route guard decision for a view path so a
// client can route without fetching the view's data.
type NavigationHandler struct {
	table *guard.Table
}

// NewNavigationHandler constructs the handler.
func NewNavigationHandler(table *guard.Table) *NavigationHandler {
	return &NavigationHandler{table: table}
}

// Register attaches the navigation route to the mux.
func (h *NavigationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/navigation", h.handle)
}

func (h *NavigationHandler) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if !strings.HasPrefix(path, "/") {
		respond.Error(w, http.StatusBadRequest, "path must start with /")
		return
	}
	decision := h.table.Decide(middleware.SnapshotFromContext(r.Context()), path)
	out := dto.NavigationResponse{
		Path:     path,
		State:    decision.State.String(),
		Redirect: decision.Redirect,
	}
	if decision.Reason != guard.NoReason {
		out.Reason = decision.Reason.String()
	}
	respond.JSON(w, http.StatusOK, "navigation decision", out)
}
