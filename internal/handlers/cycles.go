package handlers

import (
	"net/http"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/models"
)

// CyclesHandler serves the market-cycle assessments.
type CyclesHandler struct {
	logger  *common.Logger
	library *catalog.Library
}

// NewCyclesHandler creates a cycles handler.
func NewCyclesHandler(logger *common.Logger, library *catalog.Library) *CyclesHandler {
	return &CyclesHandler{logger: logger, library: library}
}

// ServeHTTP handles GET /api/cycles.
func (h *CyclesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	cycles := h.library.Cycles()
	if cycles == nil {
		cycles = []models.CycleData{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"cycles": cycles,
	})
}
