package handlers

import (
	"net/http"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/common"
)

// ReloadHandler re-runs the data load on demand.
type ReloadHandler struct {
	logger  *common.Logger
	library *catalog.Library
	load    catalog.LoadFunc
}

// NewReloadHandler creates a reload handler.
func NewReloadHandler(logger *common.Logger, library *catalog.Library, load catalog.LoadFunc) *ReloadHandler {
	return &ReloadHandler{logger: logger, library: library, load: load}
}

// ServeHTTP handles POST /api/reload. A failed load keeps the current dataset
// and answers 502.
func (h *ReloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := h.library.Reload(r.Context(), h.load); err != nil {
		WriteError(w, http.StatusBadGateway, "data load failed: "+err.Error())
		return
	}

	d := h.library.Dataset()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"wealth": len(d.Wealth),
		"fund":   len(d.Fund),
		"cycles": len(d.Cycles),
	})
}
