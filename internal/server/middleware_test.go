package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/wealth-portal/internal/common"
)

func newTestServer() *Server {
	return &Server{logger: common.NewSilentLogger()}
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	s := newTestServer()

	handler := s.corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS origin header")
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("unexpected CORS methods %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Mcp-Session-Id") {
		t.Errorf("expected Mcp-Session-Id in allowed headers, got %q", got)
	}
}

func TestCORSMiddleware_HandlesPreflight(t *testing.T) {
	s := newTestServer()

	handler := s.corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called for OPTIONS")
	}))

	req := httptest.NewRequest("OPTIONS", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for preflight, got %d", w.Code)
	}
}

func TestRecoveryMiddleware_WritesJSONError(t *testing.T) {
	s := newTestServer()

	handler := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/products/wealth", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500 after panic, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), `"status":"error"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestCSRFMiddleware_SkipsAPIRoutes(t *testing.T) {
	s := newTestServer()

	handler := s.csrfMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for /api/ routes (CSRF bypass), got %d", w.Code)
	}
}

func TestCSRFMiddleware_SkipsMCPEndpoint(t *testing.T) {
	s := newTestServer()

	handler := s.csrfMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("expected /mcp to bypass CSRF, got %d", w.Code)
	}
}
