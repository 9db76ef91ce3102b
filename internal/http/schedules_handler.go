package httpapi

import (
	"net/http"

	"sitedesk/internal/domain"
	"sitedesk/internal/repository"

	"go.uber.org/zap"
)

// SchedulesHandler serves 공정/일정 CRUD. Schedules belong to exactly one
// site and are listed either globally or per site.
type SchedulesHandler struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewSchedulesHandler(store *repository.Store, logger *zap.Logger) *SchedulesHandler {
	return &SchedulesHandler{store: store, logger: logger}
}

type schedulePayload struct {
	SiteID    *string `json:"siteId"`
	Name      *string `json:"name"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Progress  *int    `json:"progress"`
	Manager   *string `json:"manager"`
	Status    *string `json:"status"`
}

func (h *SchedulesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *SchedulesHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/api/v1/schedules/")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.store.Schedules.Remove(r.Context(), id)
		writeJSON(w, http.StatusOK, Ok(true))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ScheduleRow is one list entry with the parent site name resolved;
// schedules whose site was deleted out from under them are filtered out.
type ScheduleRow struct {
	domain.Schedule
	SiteName string `json:"siteName"`
}

func (h *SchedulesHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	siteID := r.URL.Query().Get("siteId")

	rows := []ScheduleRow{}
	for _, sc := range h.store.Schedules.GetAll(ctx) {
		if siteID != "" && sc.SiteID != siteID {
			continue
		}
		site := h.store.Sites.GetByID(ctx, sc.SiteID)
		if site == nil {
			continue
		}
		rows = append(rows, ScheduleRow{Schedule: sc, SiteName: site.Name})
	}
	writeJSON(w, http.StatusOK, Ok(rows))
}

func (h *SchedulesHandler) create(w http.ResponseWriter, r *http.Request) {
	var p schedulePayload
	if err := readBodyJSON(r, 1<<20, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	sc := domain.Schedule{}
	applySchedulePayload(&sc, &p)
	if err := sc.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	if h.store.Sites.GetByID(r.Context(), sc.SiteID) == nil {
		writeJSON(w, http.StatusBadRequest, Fail("site not found"))
		return
	}
	created := h.store.Schedules.Add(r.Context(), sc)
	h.logger.Info("schedule created",
		zap.String("scheduleId", created.ID), zap.String("siteId", created.SiteID))
	writeJSON(w, http.StatusOK, Ok(created))
}

func (h *SchedulesHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var p schedulePayload
	if err := readBodyJSON(r, 1<<20, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	existing := h.store.Schedules.GetByID(r.Context(), id)
	if existing == nil {
		writeJSON(w, http.StatusNotFound, Fail("schedule not found"))
		return
	}
	candidate := *existing
	applySchedulePayload(&candidate, &p)
	if err := candidate.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	updated := h.store.Schedules.Update(r.Context(), id, func(sc *domain.Schedule) {
		meta := sc.Meta
		*sc = candidate
		sc.Meta = meta
	})
	if updated == nil {
		writeJSON(w, http.StatusNotFound, Fail("schedule not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(updated))
}

func applySchedulePayload(sc *domain.Schedule, p *schedulePayload) {
	if p.SiteID != nil {
		sc.SiteID = *p.SiteID
	}
	if p.Name != nil {
		sc.Name = *p.Name
	}
	if p.StartDate != nil {
		sc.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		sc.EndDate = *p.EndDate
	}
	if p.Progress != nil {
		sc.Progress = domain.ClampProgress(*p.Progress)
	}
	if p.Manager != nil {
		sc.Manager = *p.Manager
	}
	if p.Status != nil {
		sc.Status = *p.Status
	}
}
