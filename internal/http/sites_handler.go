package httpapi

import (
	"net/http"
	"strings"

	"sitedesk/internal/domain"
	"sitedesk/internal/repository"
	"sitedesk/internal/service"

	"go.uber.org/zap"
)

// SitesHandler serves 현장 CRUD. List rows carry the joined assigned-staff
// names for table rendering.
type SitesHandler struct {
	store  *repository.Store
	assign *service.AssignService
	logger *zap.Logger
}

func NewSitesHandler(store *repository.Store, assign *service.AssignService, logger *zap.Logger) *SitesHandler {
	return &SitesHandler{store: store, assign: assign, logger: logger}
}

// SiteRow is one list entry with its assigned staff names.
type SiteRow struct {
	domain.Site
	StaffNames []string `json:"staffNames"`
}

// sitePayload is the create/update body; update applies only provided fields.
type sitePayload struct {
	Name      *string  `json:"name"`
	Location  *string  `json:"location"`
	Client    *string  `json:"client"`
	Architect *string  `json:"architect"`
	Amount    *float64 `json:"amount"`
	StartDate *string  `json:"startDate"`
	EndDate   *string  `json:"endDate"`
	Progress  *int     `json:"progress"`
	Status    *string  `json:"status"`
	Special   *string  `json:"special"`
	Note      *string  `json:"note"`
}

func (h *SitesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *SitesHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/api/v1/sites/")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		site := h.store.Sites.GetByID(r.Context(), id)
		if site == nil {
			writeJSON(w, http.StatusNotFound, Fail("site not found"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(site))
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		// cascades to assignments and schedules
		h.store.DeleteSite(r.Context(), id)
		writeJSON(w, http.StatusOK, Ok(true))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// list supports ?q= substring over name/location/client and ?status=.
func (h *SitesHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	status := r.URL.Query().Get("status")

	rows := []SiteRow{}
	for _, site := range h.store.Sites.GetAll(ctx) {
		if q != "" &&
			!strings.Contains(strings.ToLower(site.Name), q) &&
			!strings.Contains(strings.ToLower(site.Location), q) &&
			!strings.Contains(strings.ToLower(site.Client), q) {
			continue
		}
		if status != "" && site.Status != status {
			continue
		}
		names := []string{}
		for _, st := range h.assign.StaffForSite(ctx, site.ID) {
			names = append(names, st.Name)
		}
		rows = append(rows, SiteRow{Site: site, StaffNames: names})
	}
	writeJSON(w, http.StatusOK, Ok(rows))
}

func (h *SitesHandler) create(w http.ResponseWriter, r *http.Request) {
	var p sitePayload
	if err := readBodyJSON(r, 1<<20, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	site := domain.Site{}
	applySitePayload(&site, &p)
	if err := site.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	created := h.store.Sites.Add(r.Context(), site)
	h.logger.Info("site created", zap.String("siteId", created.ID))
	writeJSON(w, http.StatusOK, Ok(created))
}

func (h *SitesHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var p sitePayload
	if err := readBodyJSON(r, 1<<20, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	existing := h.store.Sites.GetByID(r.Context(), id)
	if existing == nil {
		writeJSON(w, http.StatusNotFound, Fail("site not found"))
		return
	}
	candidate := *existing
	applySitePayload(&candidate, &p)
	if err := candidate.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	updated := h.store.Sites.Update(r.Context(), id, func(site *domain.Site) {
		meta := site.Meta
		*site = candidate
		site.Meta = meta
	})
	if updated == nil {
		writeJSON(w, http.StatusNotFound, Fail("site not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(updated))
}

func applySitePayload(site *domain.Site, p *sitePayload) {
	if p.Name != nil {
		site.Name = strings.TrimSpace(*p.Name)
	}
	if p.Location != nil {
		site.Location = strings.TrimSpace(*p.Location)
	}
	if p.Client != nil {
		site.Client = strings.TrimSpace(*p.Client)
	}
	if p.Architect != nil {
		site.Architect = strings.TrimSpace(*p.Architect)
	}
	if p.Amount != nil {
		site.Amount = *p.Amount
	}
	if p.StartDate != nil {
		site.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		site.EndDate = *p.EndDate
	}
	if p.Progress != nil {
		site.Progress = domain.ClampProgress(*p.Progress)
	}
	if p.Status != nil {
		site.Status = *p.Status
	}
	if p.Special != nil {
		site.Special = strings.TrimSpace(*p.Special)
	}
	if p.Note != nil {
		site.Note = strings.TrimSpace(*p.Note)
	}
}
