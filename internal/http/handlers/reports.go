package handlers

import (
	"net/http"
	"time"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/records"
	"github.com/hongminglow/civic-tracker/internal/reports"
)

const (
	reportsView = "/reports"
	dateLayout  = "2006-01-02"
)

// ReportHandler serves the admin reports.
type ReportHandler struct {
	store *records.Store
	table *guard.Table
}

// NewReportHandler constructs the handler.
func NewReportHandler(store *records.Store, table *guard.Table) *ReportHandler {
	return &ReportHandler{store: store, table: table}
}

// Register attaches the admin report routes.
func (h *ReportHandler) Register(mux *http.ServeMux) {
	guarded(mux, h.table, reportsView, "GET /api/reports/visits", h.handleVisits)
	guarded(mux, h.table, reportsView, "GET /api/reports/events", h.handleEvents)
	guarded(mux, h.table, reportsView, "GET /api/reports/logins", h.handleLogins)
}

func (h *ReportHandler) handleVisits(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, "visit report", reports.Visits(h.store.Visits(""), rng))
}

func (h *ReportHandler) handleEvents(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, "event report", reports.Events(h.store.Events(""), rng))
}

// handleLogins returns the login audit log of the caller's own session.
func (h *ReportHandler) handleLogins(w http.ResponseWriter, r *http.Request) {
	logs := []models.LoginAuditRecord{}
	if cur, ok := middleware.SessionFromContext(r.Context()); ok {
		logs = cur.Manager.LoginLogs()
	}
	respond.JSON(w, http.StatusOK, "login audit log", logs)
}

// parseRange reads ?from= and ?to= as YYYY-MM-DD. The to day is inclusive.
func parseRange(w http.ResponseWriter, r *http.Request) (reports.Range, bool) {
	var rng reports.Range
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return rng, false
		}
		rng.From = from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return rng, false
		}
		rng.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.To.Before(rng.From) {
		respond.Error(w, http.StatusBadRequest, "from must not be after to")
		return rng, false
	}
	return rng, true
}
