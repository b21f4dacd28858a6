package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bobmcallan/wealth-portal/internal/catalog"
	"github.com/bobmcallan/wealth-portal/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult encodes v as the text content of a result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Sprintf("Error: failed to encode result: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// productType reads the required "type" argument.
func productType(r mcp.CallToolRequest) (models.ProductType, *mcp.CallToolResult) {
	raw := r.GetString("type", "")
	if raw == "" {
		return "", errorResult("Error: type parameter is required")
	}
	t, ok := models.ParseProductType(raw)
	if !ok {
		return "", errorResult(fmt.Sprintf("Error: unknown product type %q (expected wealth or fund)", raw))
	}
	return t, nil
}

// queryState builds the list state from tool arguments. Omitted categories
// mean "all".
func queryState(r mcp.CallToolRequest) catalog.QueryState {
	s := catalog.DefaultState()
	s.Query = r.GetString("query", "")
	s.Sort = catalog.ParseSortKey(r.GetString("sort", ""))
	s.FavoritesOnly = r.GetBool("favorites_only", false)
	if v := r.GetString("issuer", ""); v != "" {
		s.Issuer = v
	}
	if v := r.GetString("bank", ""); v != "" {
		s.Bank = v
	}
	if v := r.GetString("currency", ""); v != "" {
		s.Currency = v
	}
	if v := r.GetString("risk_level", ""); v != "" {
		s.RiskLevel = v
	}
	return s
}

// visitorID reads the optional "visitor_id" argument. UUIDs are put in the
// canonical form the HTTP visitor cookie uses; other values pass through.
func visitorID(r mcp.CallToolRequest) string {
	raw := strings.TrimSpace(r.GetString("visitor_id", ""))
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return raw
}
