package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/records"
)

const settingsView = "/settings"

// SettingsHandler serves the admin settings.
type SettingsHandler struct {
	store *records.Store
	table *guard.Table
	log   *zap.Logger
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(store *records.Store, table *guard.Table, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, table: table, log: log}
}

// Register attaches the settings routes.
func (h *SettingsHandler) Register(mux *http.ServeMux) {
	guarded(mux, h.table, settingsView, "GET /api/settings", h.handleGet)
	guarded(mux, h.table, settingsView, "PUT /api/settings", h.handleUpdate)
}

func (h *SettingsHandler) handleGet(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, "settings", h.store.Settings())
}

func (h *SettingsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.Settings
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := h.store.UpdateSettings(req)
	if err != nil {
		writeRecordError(w, h.log, err, "update settings")
		return
	}
	h.log.Info("settings updated", zap.String("by", middleware.SnapshotFromContext(r.Context()).Username()))
	respond.JSON(w, http.StatusOK, "settings updated", updated)
}
