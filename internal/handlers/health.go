package handlers

import (
	"net/http"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/common"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger  *common.Logger
	library *catalog.Library
}

// NewHealthHandler creates a new health handler. library may be nil.
func NewHealthHandler(logger *common.Logger, library *catalog.Library) *HealthHandler {
	return &HealthHandler{logger: logger, library: library}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	body := map[string]interface{}{
		"status": "ok",
	}
	if h.library != nil {
		d := h.library.Dataset()
		body["products"] = len(d.Wealth) + len(d.Fund)
		body["cycles"] = len(d.Cycles)
		if !d.LoadedAt.IsZero() {
			body["loaded_at"] = d.LoadedAt.UTC().Format(time.RFC3339)
		}
	}

	WriteJSON(w, http.StatusOK, body)
}
