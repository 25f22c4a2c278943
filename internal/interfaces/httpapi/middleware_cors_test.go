package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://standings.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings/men", nil)
	req.Header.Set("Origin", "https://standings.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://standings.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/v1/standings/men", nil)
	req.Header.Set("Origin", "https://standings.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://allowed.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings/men", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestNewWSAcceptConfig(t *testing.T) {
	cfg := newWSAcceptConfig([]string{" https://standings.example.com ", "", "localhost:5173"})
	if cfg.allowAll {
		t.Fatalf("did not expect allowAll")
	}
	if len(cfg.originPatterns) != 2 || cfg.originPatterns[0] != "standings.example.com" || cfg.originPatterns[1] != "localhost:5173" {
		t.Fatalf("unexpected origin patterns: %v", cfg.originPatterns)
	}

	if !newWSAcceptConfig([]string{"*"}).options().InsecureSkipVerify {
		t.Fatalf("expected wildcard to skip origin verification")
	}
}

func TestResolveClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "10.0.0.9:5123"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := resolveClientIP(req); got != "203.0.113.7" {
		t.Fatalf("unexpected client ip: %q", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := resolveClientIP(req); got != "10.0.0.9" {
		t.Fatalf("unexpected fallback client ip: %q", got)
	}
}
