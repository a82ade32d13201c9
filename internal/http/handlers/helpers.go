package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/records"
)

const maxBodyBytes = 1 << 20

// DirectorateCatalog is the read side of the credential table the handlers need.
type DirectorateCatalog interface {
	Directorates() []models.Directorate
	Directorate(id int64) (models.Directorate, bool)
}

// guarded registers fn under pattern behind the route guard for view.
func guarded(mux *http.ServeMux, table *guard.Table, view, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, middleware.Guard(table, view, fn))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeRecordError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, records.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "record not found")
	case errors.Is(err, records.ErrInvalid):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Error(action+" failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, action+" failed")
	}
}
