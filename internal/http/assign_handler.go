package httpapi

import (
	"errors"
	"net/http"

	"sitedesk/internal/repository"
	"sitedesk/internal/service"

	"go.uber.org/zap"
)

// AssignHandler exposes the assignment engine: the joined assignment table,
// drop/remove/clear mutations, the drag-and-drop board views, and the
// dashboard summary.
type AssignHandler struct {
	assign *service.AssignService
	logger *zap.Logger
}

func NewAssignHandler(assign *service.AssignService, logger *zap.Logger) *AssignHandler {
	return &AssignHandler{assign: assign, logger: logger}
}

type createAssignmentPayload struct {
	SiteID  string `json:"siteId"`
	StaffID string `json:"staffId"`
}

func (h *AssignHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(h.assign.Rows(r.Context())))
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		if err := h.assign.ClearAll(r.Context()); err != nil {
			writeJSON(w, http.StatusConflict, Warn("clear cancelled"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(true))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// create is the drop: reject duplicates with a warning, missing references
// with not-found. Nothing is written on either rejection.
func (h *AssignHandler) create(w http.ResponseWriter, r *http.Request) {
	var p createAssignmentPayload
	if err := readBodyJSON(r, 1<<20, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	a, err := h.assign.DropOnSite(r.Context(), p.SiteID, p.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateAssignment):
			writeJSON(w, http.StatusConflict, Warn("이미 배정된 직원입니다."))
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, Fail("site or staff not found"))
		default:
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(a))
}

func (h *AssignHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/api/v1/assignments/")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := h.assign.RemoveAssignment(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, Fail("assignment not found"))
		case errors.Is(err, service.ErrCancelled):
			writeJSON(w, http.StatusConflict, Warn("remove cancelled"))
		default:
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(true))
}

// BoardView bundles everything the assignment page renders after each
// mutation: the staff pool, the site drop targets and the joined table.
type BoardView struct {
	Pool    []service.StaffPoolEntry `json:"pool"`
	Sites   []service.SiteCard       `json:"sites"`
	Rows    []service.AssignmentRow  `json:"rows"`
	Summary service.Summary          `json:"summary"`
}

// Board serves the assignment page views; ?staff= filters the pool,
// ?site= is one of "" | 미배정 | 진행.
func (h *AssignHandler) Board(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	view := BoardView{
		Pool:    h.assign.StaffPool(ctx, r.URL.Query().Get("staff")),
		Sites:   h.assign.SiteCards(ctx, r.URL.Query().Get("site")),
		Rows:    h.assign.Rows(ctx),
		Summary: h.assign.Summarize(ctx),
	}
	if view.Pool == nil {
		view.Pool = []service.StaffPoolEntry{}
	}
	if view.Sites == nil {
		view.Sites = []service.SiteCard{}
	}
	if view.Rows == nil {
		view.Rows = []service.AssignmentRow{}
	}
	writeJSON(w, http.StatusOK, Ok(view))
}

// Summary serves the dashboard counters, including the unassigned badge.
func (h *AssignHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.assign.Summarize(r.Context())))
}
