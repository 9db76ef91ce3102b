package httpapi

import (
	"net/http"

	"sitedesk/internal/service"

	"go.uber.org/zap"
)

// SearchHandler serves the cross-collection search box. Results carry the
// raw record plus pre-highlighted display fields; hidden=true tells the
// client to close the results panel (a blank query, not an empty result).
type SearchHandler struct {
	search *service.SearchService
	logger *zap.Logger
}

func NewSearchHandler(search *service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

// SearchResultView is one rendered result: the match plus its display
// fields with every token occurrence wrapped in <mark>.
type SearchResultView struct {
	service.SearchResult
	Highlighted map[string]string `json:"highlighted"`
}

type searchResponseView struct {
	Hidden  bool               `json:"hidden"`
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []SearchResultView `json:"results"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	query := r.URL.Query().Get("q")
	resp := h.search.Search(r.Context(), query)

	view := searchResponseView{
		Hidden:  resp.Hidden,
		Query:   resp.Query,
		Count:   len(resp.Results),
		Results: []SearchResultView{},
	}
	for _, res := range resp.Results {
		view.Results = append(view.Results, SearchResultView{
			SearchResult: res,
			Highlighted:  highlightFields(res, resp.Tokens),
		})
	}
	writeJSON(w, http.StatusOK, Ok(view))
}

// highlightFields marks up the handful of fields each result card shows.
func highlightFields(res service.SearchResult, tokens []string) map[string]string {
	fields := map[string]string{}
	mark := func(key, text string) {
		if text != "" {
			fields[key] = service.Highlight(text, tokens)
		}
	}
	switch res.Kind {
	case service.SearchKindSite:
		mark("name", res.Site.Name)
		mark("location", res.Site.Location)
		mark("client", res.Site.Client)
		mark("architect", res.Site.Architect)
		mark("special", res.Site.Special)
		mark("staffNames", res.Related)
	case service.SearchKindStaff:
		mark("name", res.Staff.Name)
		mark("phone", res.Staff.Phone)
		mark("cert", res.Staff.Cert)
		mark("siteNames", res.Related)
	}
	return fields
}
