package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models/dto"
	"github.com/hongminglow/civic-tracker/internal/records"
	"github.com/hongminglow/civic-tracker/internal/scope"
)

const visitsView = "/visits"

// VisitHandler serves the citizen visit log.
type VisitHandler struct {
	store *records.Store
	table *guard.Table
	log   *zap.Logger
}

// NewVisitHandler constructs the handler.
func NewVisitHandler(store *records.Store, table *guard.Table, log *zap.Logger) *VisitHandler {
	return &VisitHandler{store: store, table: table, log: log}
}

// Register attaches the visit routes, guarded by the visits view.
func (h *VisitHandler) Register(mux *http.ServeMux) {
	guarded(mux, h.table, visitsView, "GET /api/visits", h.handleList)
	guarded(mux, h.table, visitsView, "POST /api/visits", h.handleCreate)
	guarded(mux, h.table, visitsView, "GET /api/visits/{id}", h.handleGet)
	guarded(mux, h.table, visitsView, "POST /api/visits/{id}/forward", h.handleForward)
}

// handleList supports ?search= and ?directorate=, the latter keeping only
// visits forwarded to that directorate.
func (h *VisitHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap := middleware.SnapshotFromContext(r.Context())
	visits := h.store.Visits(q.Get("search"))
	if selected := q.Get("directorate"); selected != "" {
		visits = scope.Filter(snap, visits, selected)
	}
	respond.JSON(w, http.StatusOK, "visits", visits)
}

func (h *VisitHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVisitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	visit, err := h.store.CreateVisit(req)
	if err != nil {
		writeRecordError(w, h.log, err, "create visit")
		return
	}
	respond.JSON(w, http.StatusCreated, "visit created", visit)
}

func (h *VisitHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	visit, err := h.store.Visit(id)
	if err != nil {
		writeRecordError(w, h.log, err, "get visit")
		return
	}
	respond.JSON(w, http.StatusOK, "visit", visit)
}

func (h *VisitHandler) handleForward(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.ForwardVisitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	visit, task, err := h.store.ForwardVisit(id, req.Directorate)
	if err != nil {
		writeRecordError(w, h.log, err, "forward visit")
		return
	}
	h.log.Info("visit forwarded",
		zap.Int64("visit_id", visit.ID),
		zap.String("directorate", visit.ForwardedTo),
		zap.String("by", middleware.SnapshotFromContext(r.Context()).Username()),
	)
	respond.JSON(w, http.StatusOK, "visit forwarded", dto.ForwardVisitResponse{Visit: visit, Task: task})
}
