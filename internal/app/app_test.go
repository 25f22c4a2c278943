package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "league-standings-api",
		HTTPAddr:           "127.0.0.1:0",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		DataSource:         config.DataSourceMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		LiveWorkers:        2,
		LiveRunTimeout:     time.Second,
		StoreCircuit: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Second,
			HalfOpenMaxReq:   1,
		},
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestApp_MemoryDataSourceServesLiveStandings(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if _, err := a.Start(context.Background()); err != nil {
		t.Fatalf("start app: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			t.Errorf("shutdown app: %v", err)
		}
	})

	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := httptest.NewRecorder()
		a.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/standings/men", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
		}

		var payload struct {
			Data struct {
				Loading   bool              `json:"loading"`
				Standings []json.RawMessage `json:"standings"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode standings: %v", err)
		}
		if !payload.Data.Loading {
			if len(payload.Data.Standings) == 0 {
				t.Fatalf("expected seeded standings")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("standings never finished loading")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestApp_AdminRoutesUnavailableWithoutSecret(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/teams", strings.NewReader(`{"name":"X","category":"men","manager":"Y"}`))
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a configured verifier, got %d", rec.Code)
	}
}

func TestNewTokenVerifier(t *testing.T) {
	verifier, err := newTokenVerifier(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verifier != nil {
		t.Fatalf("expected nil verifier without a secret")
	}

	verifier, err = newTokenVerifier(config.Config{AuthJWTSecret: "s3cret"}, logging.NewNop())
	if err != nil {
		t.Fatalf("build verifier: %v", err)
	}
	if verifier == nil {
		t.Fatalf("expected verifier when a secret is set")
	}
}
