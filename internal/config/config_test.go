package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load dev config: %v", err)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled by default in dev")
	}
	if cfg.LogFormat != LogFormatConsole {
		t.Fatalf("expected console log format in dev, got %q", cfg.LogFormat)
	}
	if cfg.ServiceName != "league-standings-api" {
		t.Fatalf("unexpected default service name: %q", cfg.ServiceName)
	}
	if cfg.DataSource != DataSourcePostgres {
		t.Fatalf("unexpected default data source: %q", cfg.DataSource)
	}
	if cfg.DBNotifyChannel != "league_changes" {
		t.Fatalf("unexpected default notify channel: %q", cfg.DBNotifyChannel)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected default log level: %v", cfg.LogLevel)
	}

	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("AUTH_JWT_SECRET", "prod-secret")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load prod config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled by default in prod")
	}
	if cfg.LogFormat != LogFormatJSON {
		t.Fatalf("expected json log format in prod, got %q", cfg.LogFormat)
	}
}

func TestLoad_ProdRequiresJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when AUTH_JWT_SECRET is missing in prod")
	}
}

func TestLoad_AuthConfigParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH_JWT_SECRET", " secret ")
	t.Setenv("AUTH_JWT_ISSUER", "league-auth")
	t.Setenv("AUTH_JWT_AUDIENCE", "league-admin")
	t.Setenv("AUTH_JWT_LEEWAY", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AuthJWTSecret != "secret" || cfg.AuthJWTIssuer != "league-auth" || cfg.AuthJWTAudience != "league-admin" {
		t.Fatalf("unexpected auth config: %+v", cfg)
	}
	if cfg.AuthJWTLeeway != 5*time.Second {
		t.Fatalf("unexpected leeway: %s", cfg.AuthJWTLeeway)
	}

	t.Setenv("AUTH_JWT_LEEWAY", "-1s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative AUTH_JWT_LEEWAY")
	}
}

func TestLoad_DataSourceValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATA_SOURCE", "Memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataSource != DataSourceMemory {
		t.Fatalf("unexpected data source: %q", cfg.DataSource)
	}

	t.Setenv("DATA_SOURCE", "redis")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown DATA_SOURCE")
	}
}

func TestLoad_ListenerReconnectBounds(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_LISTENER_MIN_RECONNECT", "10s")
	t.Setenv("DB_LISTENER_MAX_RECONNECT", "5s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when max reconnect is below min reconnect")
	}

	t.Setenv("DB_LISTENER_MAX_RECONNECT", "30s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBListenerMinReconnect != 10*time.Second || cfg.DBListenerMaxReconnect != 30*time.Second {
		t.Fatalf("unexpected reconnect bounds: %s..%s", cfg.DBListenerMinReconnect, cfg.DBListenerMaxReconnect)
	}
}

func TestLoad_LiveAndStoreCircuitParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LIVE_WORKERS", "4")
	t.Setenv("LIVE_RUN_TIMEOUT", "3s")
	t.Setenv("STORE_CIRCUIT_ENABLED", "false")
	t.Setenv("STORE_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("STORE_CIRCUIT_OPEN_TIMEOUT", "20s")
	t.Setenv("STORE_CIRCUIT_HALF_OPEN_MAX_REQ", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LiveWorkers != 4 || cfg.LiveRunTimeout != 3*time.Second {
		t.Fatalf("unexpected live config: workers=%d timeout=%s", cfg.LiveWorkers, cfg.LiveRunTimeout)
	}
	if cfg.StoreCircuit.Enabled {
		t.Fatalf("expected store circuit disabled")
	}
	if cfg.StoreCircuit.FailureThreshold != 7 || cfg.StoreCircuit.OpenTimeout != 20*time.Second || cfg.StoreCircuit.HalfOpenMaxReq != 3 {
		t.Fatalf("unexpected store circuit config: %+v", cfg.StoreCircuit)
	}

	t.Setenv("LIVE_WORKERS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for LIVE_WORKERS=0")
	}

	t.Setenv("LIVE_WORKERS", "2")
	t.Setenv("STORE_CIRCUIT_FAILURE_COUNT", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for STORE_CIRCUIT_FAILURE_COUNT=0")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}

	t.Setenv("BETTERSTACK_ENDPOINT", "logs.example.test")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BetterStackEndpoint != "logs.example.test" || cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected betterstack target: %+v", cfg)
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel != logging.LevelWarn {
		t.Fatalf("unexpected BetterStackMinLevel: %v", cfg.BetterStackMinLevel)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without server address")
	}

	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")
	t.Setenv("APP_SERVICE_NAME", "standings-edge")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "standings-edge" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://a.example" || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty CORS origins")
	}
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheEnabled || cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("unexpected cache config: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}

	t.Setenv("CACHE_TTL", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for CACHE_TTL=0s")
	}
}

func TestLoad_ReadsEnvFileWithoutOverridingEnvironment(t *testing.T) {
	setBaseEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "LIVE_WORKERS=6\nAPP_SERVICE_NAME=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("APP_SERVICE_NAME", "from-env")
	// Registered for restore, then unset so the file can provide it.
	t.Setenv("LIVE_WORKERS", "")
	if err := os.Unsetenv("LIVE_WORKERS"); err != nil {
		t.Fatalf("unset LIVE_WORKERS: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LiveWorkers != 6 {
		t.Fatalf("expected LIVE_WORKERS from env file, got %d", cfg.LiveWorkers)
	}
	if cfg.ServiceName != "from-env" {
		t.Fatalf("expected environment to win over env file, got %q", cfg.ServiceName)
	}
}
