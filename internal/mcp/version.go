package mcp

import (
	"context"

	"github.com/bobmcallan/wealth-portal/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// VersionTool returns the catalog entry for get_version.
func VersionTool() CatalogTool {
	return CatalogTool{
		Name:        "get_version",
		Description: "Get the wealth portal version. Use this to verify connectivity.",
		Handler:     VersionToolHandler(),
	}
}

// VersionToolHandler reports the running build.
func VersionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]config.BuildInfo{
			"wealth_portal": config.Info(),
		}), nil
	}
}
