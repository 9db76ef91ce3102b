package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard http.ServeMux; no third-party routing needed for
// a surface this size.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// pathID extracts the trailing id of /prefix/{id} routes; empty when the
// path has extra segments or no id.
func pathID(req *http.Request, prefix string) string {
	id := strings.TrimPrefix(req.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

// RegisterSiteRoutes: 현장 CRUD.
func (r *Router) RegisterSiteRoutes(h *SitesHandler) {
	r.Handle("/api/v1/sites", h.Collection)
	r.Handle("/api/v1/sites/", h.ByID)
}

// RegisterStaffRoutes: 소장/직원 CRUD.
func (r *Router) RegisterStaffRoutes(h *StaffHandler) {
	r.Handle("/api/v1/staff", h.Collection)
	r.Handle("/api/v1/staff/", h.ByID)
}

// RegisterScheduleRoutes: 공정/일정 CRUD.
func (r *Router) RegisterScheduleRoutes(h *SchedulesHandler) {
	r.Handle("/api/v1/schedules", h.Collection)
	r.Handle("/api/v1/schedules/", h.ByID)
}

// RegisterAssignRoutes: assignment engine + board views + summary.
func (r *Router) RegisterAssignRoutes(h *AssignHandler) {
	r.Handle("/api/v1/assignments", h.Collection)
	r.Handle("/api/v1/assignments/", h.ByID)
	r.Handle("/api/v1/assignments-board", h.Board)
	r.Handle("/api/v1/summary", h.Summary)
}

// RegisterSearchRoutes: cross-collection fuzzy search.
func (r *Router) RegisterSearchRoutes(h *SearchHandler) {
	r.Handle("/api/v1/search", h.Search)
}

// RegisterAdminRoutes: maintenance operations.
func (r *Router) RegisterAdminRoutes(h *AdminHandler) {
	r.Handle("/api/v1/reset", h.Reset)
}

// RegisterExportRoutes: xlsx export/import + history.
func (r *Router) RegisterExportRoutes(h *ExportHandler) {
	r.Handle("/api/v1/export/xlsx", h.Export)
	r.Handle("/api/v1/export/history", h.History)
	r.Handle("/api/v1/import/xlsx", h.Import)
}
