package handlers

import (
	"net/http"

	"github.com/bobmcallan/wealth-portal/internal/cache"
	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/favorites"
)

const favoritesPrefix = "/api/favorites"

// FavoritesHandler lists and toggles a visitor's favorites.
type FavoritesHandler struct {
	logger    *common.Logger
	favorites *favorites.Manager
	cache     *cache.ResponseCache
}

// NewFavoritesHandler creates a favorites handler. cache may be nil.
func NewFavoritesHandler(logger *common.Logger, favs *favorites.Manager, c *cache.ResponseCache) *FavoritesHandler {
	return &FavoritesHandler{logger: logger, favorites: favs, cache: c}
}

// HandleList serves GET /api/favorites.
func (h *FavoritesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	visitor := VisitorID(w, r)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": h.favorites.For(visitor).Load(r.Context()),
	})
}

// HandleToggle serves POST /api/favorites/{id}.
func (h *FavoritesHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	segs := pathSegments(r.URL.Path, favoritesPrefix)
	if len(segs) != 1 {
		WriteError(w, http.StatusBadRequest, "product id required")
		return
	}
	id := segs[0]
	visitor := VisitorID(w, r)

	set, err := h.favorites.For(visitor).Toggle(r.Context(), id)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("id", id).Str("error", err.Error()).Msg("failed to toggle favorite")
		}
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":    "error",
			"error":     "failed to save favorites",
			"favorites": set,
		})
		return
	}

	h.cache.InvalidateVisitor(visitor)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":        id,
		"favorited": set.Contains(id),
		"favorites": set,
	})
}
