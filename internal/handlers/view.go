package handlers

import (
	"net/http"

	"github.com/bobmcallan/wealth-portal/internal/models"
)

// NavItem is one entry of the navigation menu.
type NavItem struct {
	View   models.View `json:"view"`
	Label  string      `json:"label"`
	Active bool        `json:"active"`
}

// ViewResponse describes the view a fragment resolves to.
type ViewResponse struct {
	View        models.View        `json:"view"`
	Label       string             `json:"label"`
	ProductType models.ProductType `json:"product_type,omitempty"`
	Title       string             `json:"title,omitempty"`
	Nav         []NavItem          `json:"nav"`
}

// ResolveView builds the response for fragment.
func ResolveView(fragment string) ViewResponse {
	v := models.ParseView(fragment)
	resp := ViewResponse{View: v, Label: v.Label()}
	if t, ok := v.ProductType(); ok {
		resp.ProductType = t
		resp.Title = t.Title()
	}
	for _, item := range models.Views {
		resp.Nav = append(resp.Nav, NavItem{View: item, Label: item.Label(), Active: item == v})
	}
	return resp
}

// HandleView serves GET /api/view?fragment=#wealth and GET /.
func HandleView(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	WriteJSON(w, http.StatusOK, ResolveView(r.URL.Query().Get("fragment")))
}
