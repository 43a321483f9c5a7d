package config

import (
	"testing"
	"time"
)

// baseEnv clears the variables whose absence the tests rely on.
func baseEnv(t *testing.T, appEnv string) {
	t.Helper()

	for _, key := range []string{
		"DB_URL", "SEED_DEMO", "UPTRACE_ENABLED", "UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS",
		"PYROSCOPE_ENABLED", "PPROF_ENABLED", "CACHE_ENABLED", "CACHE_TTL",
		"CORS_ALLOWED_ORIGINS", "DB_DISABLE_PREPARED_BINARY_RESULT", "STATSBOMB_BASE_URL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("APP_ENV", appEnv)
}

func TestLoad_Defaults(t *testing.T) {
	baseEnv(t, EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	switch {
	case cfg.UsesDatabase():
		t.Fatalf("expected the in-memory store without DB_URL")
	case !cfg.SeedDemo:
		t.Fatalf("expected demo seed in dev")
	case cfg.DBDisablePreparedBinary:
		t.Fatalf("expected DBDisablePreparedBinary=false by default")
	case !cfg.CacheEnabled || cfg.CacheTTL != time.Minute:
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	case len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*":
		t.Fatalf("unexpected CORS default: %+v", cfg.CORSAllowedOrigins)
	case cfg.DataDir != "data" || cfg.TeamMapThreshold != 0.85:
		t.Fatalf("unexpected import defaults: data=%q threshold=%v", cfg.DataDir, cfg.TeamMapThreshold)
	case cfg.HTTPAddr != ":8080" || cfg.ServiceName != "futball":
		t.Fatalf("unexpected service defaults: addr=%q name=%q", cfg.HTTPAddr, cfg.ServiceName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	baseEnv(t, EnvProd)
	t.Setenv("DB_URL", " postgres://localhost/futball ")
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,http://localhost:5173 ")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")
	t.Setenv("APP_SERVICE_NAME", "futball-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.UsesDatabase() || cfg.DBURL != "postgres://localhost/futball" || !cfg.DBDisablePreparedBinary {
		t.Fatalf("unexpected db settings: url=%q binary=%v", cfg.DBURL, cfg.DBDisablePreparedBinary)
	}
	if cfg.SeedDemo {
		t.Fatalf("expected no demo seed outside dev")
	}
	if got := cfg.CORSAllowedOrigins; len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", got)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("expected dsn from OTLP headers, got %q", cfg.UptraceDSN)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr, got %q", cfg.PprofAddr)
	}
	if cfg.PyroscopeAppName != "futball-api-test" {
		t.Fatalf("expected pyroscope app name from service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown app env", env: map[string]string{"APP_ENV": "qa"}},
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true"}},
		{name: "pyroscope without server", env: map[string]string{"PYROSCOPE_ENABLED": "true"}},
		{name: "prepared binary not bool", env: map[string]string{"DB_DISABLE_PREPARED_BINARY_RESULT": "not-bool"}},
		{name: "seed not bool", env: map[string]string{"SEED_DEMO": "maybe"}},
		{name: "cache ttl", env: map[string]string{"CACHE_TTL": "bad"}},
		{name: "read timeout", env: map[string]string{"APP_READ_TIMEOUT": "-1s"}},
		{name: "no cors origins", env: map[string]string{"CORS_ALLOWED_ORIGINS": " , "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			baseEnv(t, EnvDev)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", tc.env)
			}
		})
	}
}

func TestLoad_StatsBombConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STATSBOMB_BASE_URL", " https://mirror.example.com/data ")
	t.Setenv("STATSBOMB_TIMEOUT", "5s")
	t.Setenv("STATSBOMB_MAX_RETRIES", "0")
	t.Setenv("STATSBOMB_CIRCUIT_ENABLED", "false")
	t.Setenv("STATSBOMB_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("STATSBOMB_CIRCUIT_OPEN_TIMEOUT", "1m")
	t.Setenv("STATSBOMB_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StatsBombBaseURL != "https://mirror.example.com/data" {
		t.Fatalf("unexpected StatsBombBaseURL: %q", cfg.StatsBombBaseURL)
	}
	if cfg.StatsBombTimeout != 5*time.Second || cfg.StatsBombMaxRetries != 0 {
		t.Fatalf("unexpected client settings: timeout=%s retries=%d", cfg.StatsBombTimeout, cfg.StatsBombMaxRetries)
	}
	circuit := cfg.StatsBombCircuit
	if circuit.Enabled || circuit.Threshold != 3 || circuit.Cooldown != time.Minute || circuit.Probes != 1 {
		t.Fatalf("unexpected circuit config: %+v", circuit)
	}
}

func TestLoad_StatsBombRejectsInvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := map[string]string{
		"STATSBOMB_TIMEOUT":               "0s",
		"STATSBOMB_MAX_RETRIES":           "-1",
		"STATSBOMB_CIRCUIT_FAILURE_COUNT": "0",
		"STATSBOMB_CIRCUIT_OPEN_TIMEOUT":  "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_ImportSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("DATA_DIR", "/srv/futball")
	t.Setenv("IMPORT_WORKERS", "8")
	t.Setenv("TEAM_MAP_THRESHOLD", "0.9")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataDir != "/srv/futball" || cfg.ImportWorkers != 8 || cfg.TeamMapThreshold != 0.9 {
		t.Fatalf("unexpected import settings: %+v", cfg)
	}
	if cfg.SeedDemo {
		t.Fatalf("expected SeedDemo=false outside dev")
	}
	if cfg.UsesDatabase() {
		t.Fatalf("expected in-memory store without DB_URL")
	}

	t.Setenv("TEAM_MAP_THRESHOLD", "1.5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for TEAM_MAP_THRESHOLD above 1")
	}
}

func TestLoad_LogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Setenv("APP_LOG_LEVEL", "warning")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}

	t.Setenv("APP_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_LOG_LEVEL")
	}
}
