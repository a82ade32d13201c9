package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/models/dto"
	"github.com/hongminglow/civic-tracker/internal/records"
)

const eventsView = "/events"

// EventHandler serves the event calendar.
type EventHandler struct {
	store *records.Store
	table *guard.Table
	log   *zap.Logger
}

// NewEventHandler constructs the handler.
func NewEventHandler(store *records.Store, table *guard.Table, log *zap.Logger) *EventHandler {
	return &EventHandler{store: store, table: table, log: log}
}

// Register attaches the event routes, guarded by the events view.
func (h *EventHandler) Register(mux *http.ServeMux) {
	guarded(mux, h.table, eventsView, "GET /api/events", h.handleList)
	guarded(mux, h.table, eventsView, "POST /api/events", h.handleCreate)
	guarded(mux, h.table, eventsView, "GET /api/events/{id}", h.handleGet)
	guarded(mux, h.table, eventsView, "DELETE /api/events/{id}", h.handleDelete)
}

func (h *EventHandler) handleList(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "events", h.store.Events(r.URL.Query().Get("search")))
}

func (h *EventHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, err := h.store.CreateEvent(req)
	if err != nil {
		writeRecordError(w, h.log, err, "create event")
		return
	}
	respond.JSON(w, http.StatusCreated, "event created", event)
}

func (h *EventHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	event, err := h.store.Event(id)
	if err != nil {
		writeRecordError(w, h.log, err, "get event")
		return
	}
	respond.JSON(w, http.StatusOK, "event", event)
}

func (h *EventHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteEvent(id); err != nil {
		writeRecordError(w, h.log, err, "delete event")
		return
	}
	respond.JSON(w, http.StatusOK, "event deleted", nil)
}
