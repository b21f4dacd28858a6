package server

import (
	"net/http"

	"github.com/bobmcallan/wealth-portal/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Root resolves to the home view
	mux.HandleFunc("/", s.handleRoot)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/view", handlers.HandleView)
	mux.HandleFunc("/api/cycles", s.app.CyclesHandler.ServeHTTP)
	if s.app.Config.ReloadEnabled() {
		mux.HandleFunc("/api/reload", s.app.ReloadHandler.ServeHTTP)
	}
	mux.Handle("/api/products/", s.app.ProductsHandler)

	mux.HandleFunc("/api/favorites", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, s.app.FavoritesHandler.HandleList, nil)
	})
	mux.HandleFunc("/api/favorites/", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"POST": s.app.FavoritesHandler.HandleToggle,
		})
	})

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleRoot serves the home view at "/" and 404s everything else.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.handleNotFound(w, r)
		return
	}
	handlers.HandleView(w, r)
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
