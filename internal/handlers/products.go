package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/cache"
	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/favorites"
	"github.com/bobmcallan/wealth-portal/internal/models"
	"github.com/bobmcallan/wealth-portal/internal/share"
)

const productsPrefix = "/api/products/"

// ProductListResponse is the body of GET /api/products/{type}.
type ProductListResponse struct {
	Type      models.ProductType `json:"type"`
	Title     string             `json:"title"`
	State     catalog.QueryState `json:"state"`
	Products  []models.Product   `json:"products"`
	Total     int                `json:"total"`
	Favorites favorites.Set      `json:"favorites"`
}

// FilterOptionsResponse is the body of GET /api/products/{type}/filters.
type FilterOptionsResponse struct {
	Type        models.ProductType    `json:"type"`
	Options     catalog.FilterOptions `json:"options"`
	LastUpdated *string               `json:"last_updated"`
}

// ProductsHandler serves the product list views.
type ProductsHandler struct {
	logger    *common.Logger
	library   *catalog.Library
	engine    *catalog.Engine
	favorites *favorites.Manager
	cache     *cache.ResponseCache
	baseURL   string

	// derived runs after a list is derived and before it is written. Tests
	// use it to interleave toggles and reloads.
	derived func()
}

// NewProductsHandler creates a products handler. cache may be nil.
func NewProductsHandler(logger *common.Logger, library *catalog.Library, engine *catalog.Engine, favs *favorites.Manager, c *cache.ResponseCache, baseURL string) *ProductsHandler {
	return &ProductsHandler{
		logger:    logger,
		library:   library,
		engine:    engine,
		favorites: favs,
		cache:     c,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// ServeHTTP routes:
//
//	GET /api/products/{type}
//	GET /api/products/{type}/filters
//	GET /api/products/{type}/share
//	GET /api/products/{type}/{id}/share
func (h *ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	segs := pathSegments(r.URL.Path, productsPrefix)
	if len(segs) == 0 {
		WriteError(w, http.StatusNotFound, "product type required")
		return
	}
	t, ok := models.ParseProductType(segs[0])
	if !ok {
		WriteError(w, http.StatusNotFound, "unknown product type: "+segs[0])
		return
	}

	switch {
	case len(segs) == 1:
		h.handleList(w, r, t)
	case len(segs) == 2 && segs[1] == "filters":
		h.handleFilters(w, t)
	case len(segs) == 2 && segs[1] == "share":
		card := share.ListCard(t)
		WriteJSON(w, http.StatusOK, share.NewPayload(t, &card, h.pageURL(t)))
	case len(segs) == 3 && segs[2] == "share":
		h.handleShare(w, t, segs[1])
	default:
		WriteError(w, http.StatusNotFound, "not found")
	}
}

func (h *ProductsHandler) handleList(w http.ResponseWriter, r *http.Request, t models.ProductType) {
	visitor := VisitorID(w, r)

	key := cache.MakeKey(visitor, r.Method, r.URL.Path+"?"+r.URL.RawQuery)
	if resp, ok := h.cache.Get(key); ok {
		writeResponse(w, resp, "HIT")
		return
	}

	snap := h.cache.Snapshot(visitor)
	state := catalog.ParseState(r.URL.Query())
	favs := h.favorites.For(visitor).Load(r.Context())
	products := h.engine.Derive(h.library.Products(t), state, favs)

	if h.logger != nil {
		h.logger.Debug().
			Str("type", string(t)).
			Str("query", state.Query).
			Str("sort", string(state.Sort)).
			Int("total", len(products)).
			Msg("derived product list")
	}
	if h.derived != nil {
		h.derived()
	}

	writeCachedJSON(w, h.cache, snap, key, ProductListResponse{
		Type:      t,
		Title:     t.Title(),
		State:     state,
		Products:  products,
		Total:     len(products),
		Favorites: favs,
	})
}

func (h *ProductsHandler) handleFilters(w http.ResponseWriter, t models.ProductType) {
	products := h.library.Products(t)
	resp := FilterOptionsResponse{
		Type:    t,
		Options: h.engine.Options(products),
	}
	if ts, ok := catalog.LastUpdated(products); ok {
		s := ts.UTC().Format(time.RFC3339)
		resp.LastUpdated = &s
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *ProductsHandler) handleShare(w http.ResponseWriter, t models.ProductType, id string) {
	for _, p := range h.library.Products(t) {
		if p.ID == id {
			WriteJSON(w, http.StatusOK, share.NewPayload(t, &p, h.pageURL(t)))
			return
		}
	}
	WriteError(w, http.StatusNotFound, "product not found: "+id)
}

func (h *ProductsHandler) pageURL(t models.ProductType) string {
	return h.baseURL + "/#" + string(t)
}
