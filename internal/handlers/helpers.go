package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bobmcallan/wealth-portal/internal/cache"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// writeCachedJSON encodes data and writes it. It is stored under key unless
// the cache was invalidated after snap was taken.
func writeCachedJSON(w http.ResponseWriter, c *cache.ResponseCache, snap cache.Snapshot, key string, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	resp := &cache.CachedResponse{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       buf.Bytes(),
	}
	c.SetIfCurrent(snap, key, resp)
	writeResponse(w, resp, "MISS")
}

// writeResponse replays a cached response.
func writeResponse(w http.ResponseWriter, resp *cache.CachedResponse, cacheStatus string) {
	for k, v := range resp.Headers {
		w.Header()[k] = v
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

// pathSegments splits the path after prefix into non-empty segments.
func pathSegments(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
