package mcp

import (
	"net/http"

	"github.com/bobmcallan/wealth-portal/internal/common"
	"github.com/bobmcallan/wealth-portal/internal/config"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	catalog    []CatalogTool
}

// NewHandler registers the portal tools and builds the endpoint.
func NewHandler(d Deps, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"wealth-portal",
		config.Info().Version,
		mcpserver.WithToolCapabilities(true),
	)

	validated := ValidateCatalog(Catalog(d), logger)
	toolCount := RegisterTools(mcpSrv, validated)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	if logger != nil {
		logger.Info().Int("tools", toolCount).Msg("MCP handler initialized")
	}

	return &Handler{
		streamable: streamable,
		logger:     logger,
		catalog:    validated,
	}
}

// Catalog returns a copy of the registered tool catalog.
func (h *Handler) Catalog() []CatalogTool {
	result := make([]CatalogTool, len(h.catalog))
	copy(result, h.catalog)
	return result
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
