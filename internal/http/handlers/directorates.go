package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/records"
	"github.com/hongminglow/civic-tracker/internal/scope"
)

// DirectorateHandler serves the directorate list and the tasks forwarded to
// each directorate. Both are scoped: a directorate account only ever sees its
// own entry and its own tasks.
type DirectorateHandler struct {
	store   *records.Store
	catalog DirectorateCatalog
	table   *guard.Table
	log     *zap.Logger
}

// NewDirectorateHandler constructs the handler.
func NewDirectorateHandler(store *records.Store, catalog DirectorateCatalog, table *guard.Table, log *zap.Logger) *DirectorateHandler {
	return &DirectorateHandler{store: store, catalog: catalog, table: table, log: log}
}

// Register attaches the directorate and task routes.
func (h *DirectorateHandler) Register(mux *http.ServeMux) {
	guarded(mux, h.table, guard.DirectoratePath, "GET /api/directorates", h.handleList)
	guarded(mux, h.table, guard.DirectoratePath, "GET /api/directorates/tasks", h.handleTasks)
	guarded(mux, h.table, guard.DirectoratePath, "POST /api/directorates/tasks/{id}/complete", h.handleComplete)
}

func (h *DirectorateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	snap := middleware.SnapshotFromContext(r.Context())
	list := scope.Directorates(snap, h.catalog.Directorates(), r.URL.Query().Get("search"))
	respond.JSON(w, http.StatusOK, "directorates", list)
}

func (h *DirectorateHandler) handleTasks(w http.ResponseWriter, r *http.Request) {
	snap := middleware.SnapshotFromContext(r.Context())
	tasks := scope.Filter(snap, h.store.Tasks(), r.URL.Query().Get("directorate"))
	respond.JSON(w, http.StatusOK, "tasks", tasks)
}

// handleComplete answers 404 for tasks outside the caller's scope so a
// directorate account cannot probe other directorates' task ids.
func (h *DirectorateHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task, err := h.store.Task(id)
	if err != nil {
		writeRecordError(w, h.log, err, "complete task")
		return
	}
	snap := middleware.SnapshotFromContext(r.Context())
	if len(scope.Filter(snap, []models.Task{task}, "")) == 0 {
		respond.Error(w, http.StatusNotFound, "record not found")
		return
	}
	task, err = h.store.CompleteTask(id)
	if err != nil {
		writeRecordError(w, h.log, err, "complete task")
		return
	}
	h.log.Info("task completed", zap.Int64("task_id", task.ID), zap.String("by", snap.Username()))
	respond.JSON(w, http.StatusOK, "task completed", task)
}
