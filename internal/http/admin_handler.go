package httpapi

import (
	"net/http"

	"sitedesk/internal/repository"

	"go.uber.org/zap"
)

// AdminHandler holds the destructive maintenance operations.
type AdminHandler struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewAdminHandler(store *repository.Store, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{store: store, logger: logger}
}

// Reset replaces every collection with the bundled sample data.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.store.ResetWithSampleData(r.Context())
	h.logger.Info("store reset to sample data")
	writeJSON(w, http.StatusOK, Ok(true))
}
