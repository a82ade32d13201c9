package handlers

import (
	"net/http"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/models/dto"
	"github.com/hongminglow/civic-tracker/internal/records"
	"github.com/hongminglow/civic-tracker/internal/scope"
)

// OverviewHandler serves the read-only views: dashboard, departments and profile.
type OverviewHandler struct {
	store   *records.Store
	catalog DirectorateCatalog
	table   *guard.Table
}

// NewOverviewHandler constructs the handler.
func NewOverviewHandler(store *records.Store, catalog DirectorateCatalog, table *guard.Table) *OverviewHandler {
	return &OverviewHandler{store: store, catalog: catalog, table: table}
}

// Register attaches the dashboard, departments and profile routes.
func (h *OverviewHandler) Register(mux *http.ServeMux) {
	guarded(mux, h.table, dashboardPath, "GET /api/dashboard", h.handleDashboard)
	guarded(mux, h.table, "/departments", "GET /api/departments", h.handleDepartments)
	guarded(mux, h.table, "/profile", "GET /api/profile", h.handleProfile)
}

func (h *OverviewHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := middleware.SnapshotFromContext(r.Context())
	visits := h.store.Visits("")
	out := dto.DashboardResponse{
		TotalVisits:    len(visits),
		VisitsByStatus: make(map[string]int, len(models.VisitStatuses)),
		TotalEvents:    len(h.store.Events("")),
	}
	for _, status := range models.VisitStatuses {
		out.VisitsByStatus[status] = 0
	}
	for _, v := range visits {
		out.VisitsByStatus[v.Status]++
	}
	for _, t := range scope.Filter(snap, h.store.Tasks(), "") {
		if t.Status != models.TaskCompleted {
			out.OpenTasks++
		}
	}
	respond.JSON(w, http.StatusOK, "dashboard", out)
}

func (h *OverviewHandler) handleDepartments(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, "departments", models.Departments())
}

func (h *OverviewHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	snap := middleware.SnapshotFromContext(r.Context())
	if snap.Principal == nil {
		respond.Redirect(w, http.StatusUnauthorized, "authentication required", guard.LoginPath)
		return
	}
	out := dto.ProfileResponse{User: *snap.Principal}
	if snap.IsDirectorate() {
		if d, ok := h.catalog.Directorate(snap.Principal.DirectorateID); ok {
			out.Directorate = &d
		}
	}
	respond.JSON(w, http.StatusOK, "profile", out)
}
