package httpapi

import (
	"io"
	"net/http"
	"net/url"

	"sitedesk/internal/domain"
	"sitedesk/internal/service"

	"go.uber.org/zap"
)

// ExportHandler serves spreadsheet export/import and the export history.
type ExportHandler struct {
	export *service.ExportService
	logger *zap.Logger
}

func NewExportHandler(export *service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{export: export, logger: logger}
}

// Export streams the workbook download and appends a history entry.
// ?operator= tags the entry.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	data := h.export.BuildExport(ctx)
	b, err := GenerateWorkbook(data)
	if err != nil {
		h.logger.Error("workbook generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("export failed"))
		return
	}
	h.export.RecordExport(ctx, data, r.URL.Query().Get("operator"))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		"attachment; filename*=UTF-8''"+url.PathEscape(data.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type importResultView struct {
	Sites int `json:"sites"`
	Staff int `json:"staff"`
}

// Import bulk-replaces sites/staff from an uploaded workbook. The body is
// the raw xlsx file.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil || len(body) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("empty upload"))
		return
	}
	sites, staff, err := ParseWorkbook(body)
	if err != nil {
		h.logger.Warn("workbook parse failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, Fail("invalid workbook"))
		return
	}

	ctx := r.Context()
	res := importResultView{}
	if sites != nil {
		res.Sites = h.export.ImportSites(ctx, sites)
	}
	if staff != nil {
		res.Staff = h.export.ImportStaff(ctx, staff)
	}
	writeJSON(w, http.StatusOK, Ok(res))
}

// History lists (GET) or bulk-clears (DELETE) the export log.
func (h *ExportHandler) History(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries := h.export.History(r.Context())
		if entries == nil {
			entries = []domain.ExportHistoryEntry{}
		}
		writeJSON(w, http.StatusOK, Ok(entries))
	case http.MethodDelete:
		h.export.ClearHistory(r.Context())
		writeJSON(w, http.StatusOK, Ok(true))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
