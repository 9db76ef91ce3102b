package httpapi

import (
	"net/http"
	"strings"

	"sitedesk/internal/domain"
	"sitedesk/internal/repository"
	"sitedesk/internal/service"

	"go.uber.org/zap"
)

// StaffHandler serves 소장/직원 CRUD.
type StaffHandler struct {
	store  *repository.Store
	assign *service.AssignService
	logger *zap.Logger
}

func NewStaffHandler(store *repository.Store, assign *service.AssignService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{store: store, assign: assign, logger: logger}
}

// StaffRow is one list entry with its assigned site names.
type StaffRow struct {
	domain.Staff
	SiteNames []string `json:"siteNames"`
}

type staffPayload struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Cert     *string `json:"cert"`
	JoinDate *string `json:"joinDate"`
	Status   *string `json:"status"`
}

func (h *StaffHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *StaffHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/api/v1/staff/")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		st := h.store.Staff.GetByID(r.Context(), id)
		if st == nil {
			writeJSON(w, http.StatusNotFound, Fail("staff not found"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(st))
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		// cascades to assignments
		h.store.DeleteStaff(r.Context(), id)
		writeJSON(w, http.StatusOK, Ok(true))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// list supports ?q= substring over name/cert/phone and ?role=.
func (h *StaffHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	role := r.URL.Query().Get("role")

	rows := []StaffRow{}
	for _, st := range h.store.Staff.GetAll(ctx) {
		if q != "" &&
			!strings.Contains(strings.ToLower(st.Name), q) &&
			!strings.Contains(strings.ToLower(st.Cert), q) &&
			!strings.Contains(st.Phone, q) {
			continue
		}
		if role != "" && st.Role != role {
			continue
		}
		names := []string{}
		for _, site := range h.assign.SitesForStaff(ctx, st.ID) {
			names = append(names, site.Name)
		}
		rows = append(rows, StaffRow{Staff: st, SiteNames: names})
	}
	writeJSON(w, http.StatusOK, Ok(rows))
}

func (h *StaffHandler) create(w http.ResponseWriter, r *http.Request) {
	var p staffPayload
	if err := readBodyJSON(r, 1<<20, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	st := domain.Staff{}
	applyStaffPayload(&st, &p)
	if err := st.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	created := h.store.Staff.Add(r.Context(), st)
	h.logger.Info("staff created", zap.String("staffId", created.ID))
	writeJSON(w, http.StatusOK, Ok(created))
}

func (h *StaffHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var p staffPayload
	if err := readBodyJSON(r, 1<<20, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	existing := h.store.Staff.GetByID(r.Context(), id)
	if existing == nil {
		writeJSON(w, http.StatusNotFound, Fail("staff not found"))
		return
	}
	candidate := *existing
	applyStaffPayload(&candidate, &p)
	if err := candidate.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	updated := h.store.Staff.Update(r.Context(), id, func(st *domain.Staff) {
		meta := st.Meta
		*st = candidate
		st.Meta = meta
	})
	if updated == nil {
		writeJSON(w, http.StatusNotFound, Fail("staff not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(updated))
}

func applyStaffPayload(st *domain.Staff, p *staffPayload) {
	if p.Name != nil {
		st.Name = strings.TrimSpace(*p.Name)
	}
	if p.Role != nil {
		st.Role = *p.Role
	}
	if p.Phone != nil {
		st.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Email != nil {
		st.Email = strings.TrimSpace(*p.Email)
	}
	if p.Cert != nil {
		st.Cert = strings.TrimSpace(*p.Cert)
	}
	if p.JoinDate != nil {
		st.JoinDate = *p.JoinDate
	}
	if p.Status != nil {
		st.Status = *p.Status
	}
}
