package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/bobmcallan/wealth-portal/internal/cache"
	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/favorites"
	"github.com/bobmcallan/wealth-portal/internal/models"
	"github.com/bobmcallan/wealth-portal/internal/share"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Deps are the components the tools read from.
type Deps struct {
	Library   *catalog.Library
	Engine    *catalog.Engine
	Favorites *favorites.Manager
	Cache     *cache.ResponseCache // may be nil
	BaseURL   string
}

var (
	typeParam = CatalogParam{
		Name:        "type",
		Type:        "string",
		Description: "Product list: wealth (理财产品) or fund (基金产品)",
		Required:    true,
		Enum:        []string{string(models.ProductTypeWealth), string(models.ProductTypeFund)},
	}
	visitorParam = CatalogParam{
		Name:        "visitor_id",
		Type:        "string",
		Description: "Visitor whose favorites apply. Omit for the shared favorites set.",
	}
)

// Catalog returns the portal's tool catalog.
func Catalog(d Deps) []CatalogTool {
	return []CatalogTool{
		{
			Name:        "list_products",
			Description: "Search, filter and sort the wealth or fund product list.",
			Params: []CatalogParam{
				typeParam,
				{Name: "query", Type: "string", Description: "Case-insensitive text matched against every product field"},
				{Name: "sort", Type: "string", Description: "Sort order: name (default) or return period, highest first",
					Enum: []string{string(catalog.SortByName), string(catalog.SortBy1M), string(catalog.SortBy3M), string(catalog.SortBy6M)}},
				{Name: "issuer", Type: "string", Description: "Exact issuer filter"},
				{Name: "bank", Type: "string", Description: "Distribution bank filter"},
				{Name: "currency", Type: "string", Description: "Exact currency filter"},
				{Name: "risk_level", Type: "string", Description: "Exact risk level filter"},
				{Name: "favorites_only", Type: "boolean", Description: "Only favorited products"},
				visitorParam,
			},
			Handler: listProductsHandler(d),
		},
		{
			Name:        "product_filters",
			Description: "List the issuers, banks, currencies and risk levels present in a product list.",
			Params:      []CatalogParam{typeParam},
			Handler:     productFiltersHandler(d),
		},
		{
			Name:        "list_cycles",
			Description: "Market-cycle stage and outlook for each tracked asset class.",
			Handler:     listCyclesHandler(d),
		},
		{
			Name:        "share_product",
			Description: "Render the share text for a product.",
			Params: []CatalogParam{
				typeParam,
				{Name: "id", Type: "string", Description: "Product id", Required: true},
			},
			Handler: shareProductHandler(d),
		},
		{
			Name:        "toggle_favorite",
			Description: "Add a product to favorites, or remove it if already present.",
			Params: []CatalogParam{
				{Name: "id", Type: "string", Description: "Product id", Required: true},
				visitorParam,
			},
			Handler: toggleFavoriteHandler(d),
		},
		VersionTool(),
	}
}

func listProductsHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t, errRes := productType(r)
		if errRes != nil {
			return errRes, nil
		}
		state := queryState(r)
		favs := d.Favorites.For(visitorID(r)).Load(ctx)
		products := d.Engine.Derive(d.Library.Products(t), state, favs)

		return jsonResult(map[string]interface{}{
			"type":      t,
			"title":     t.Title(),
			"products":  products,
			"total":     len(products),
			"favorites": favs,
		}), nil
	}
}

func productFiltersHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t, errRes := productType(r)
		if errRes != nil {
			return errRes, nil
		}
		products := d.Library.Products(t)
		result := map[string]interface{}{
			"type":         t,
			"options":      d.Engine.Options(products),
			"last_updated": nil,
		}
		if ts, ok := catalog.LastUpdated(products); ok {
			result["last_updated"] = ts.UTC().Format(time.RFC3339)
		}
		return jsonResult(result), nil
	}
}

func listCyclesHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cycles := d.Library.Cycles()
		if cycles == nil {
			cycles = []models.CycleData{}
		}
		return jsonResult(map[string]interface{}{"cycles": cycles}), nil
	}
}

func shareProductHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t, errRes := productType(r)
		if errRes != nil {
			return errRes, nil
		}
		id := r.GetString("id", "")
		if id == "" {
			return errorResult("Error: id parameter is required"), nil
		}
		for _, p := range d.Library.Products(t) {
			if p.ID == id {
				pageURL := strings.TrimRight(d.BaseURL, "/") + "/#" + string(t)
				return jsonResult(share.NewPayload(t, &p, pageURL)), nil
			}
		}
		return errorResult("Error: product not found: " + id), nil
	}
}

func toggleFavoriteHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := r.GetString("id", "")
		if id == "" {
			return errorResult("Error: id parameter is required"), nil
		}
		visitor := visitorID(r)
		set, err := d.Favorites.For(visitor).Toggle(ctx, id)
		if err != nil {
			return errorResult("Error: " + err.Error()), nil
		}
		d.Cache.InvalidateVisitor(visitor)
		return jsonResult(map[string]interface{}{
			"id":        id,
			"favorited": set.Contains(id),
			"favorites": set,
		}), nil
	}
}
