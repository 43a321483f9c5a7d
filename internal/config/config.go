package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/futball/internal/platform/logging"
	"github.com/riskibarqy/futball/internal/platform/resilience"
)

// Config stores runtime configuration shared by the API and the CLI.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	DBURL                   string
	DBDisablePreparedBinary bool
	SeedDemo                bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	PprofEnabled            bool
	PprofAddr               string
	UptraceEnabled          bool
	UptraceDSN              string
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeBasicAuthUser  string
	PyroscopeBasicAuthPass  string
	PyroscopeUploadRate     time.Duration
	DataDir                 string
	ImportWorkers           int
	TeamMapThreshold        float64
	StatsBombBaseURL        string
	StatsBombTimeout        time.Duration
	StatsBombMaxRetries     int
	StatsBombCircuit        resilience.BreakerConfig
	LogLevel                logging.Level
}

// UsesDatabase reports whether a relational store is configured. Without
// one the processes run on the in-memory store.
func (c Config) UsesDatabase() bool {
	return strings.TrimSpace(c.DBURL) != ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "futball"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DataDir:            strings.TrimSpace(getEnv("DATA_DIR", "data")),
		StatsBombBaseURL:   strings.TrimSpace(getEnv("STATSBOMB_BASE_URL", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")); err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	seedDefault := "false"
	if appEnv == EnvDev {
		seedDefault = "true"
	}
	if cfg.SeedDemo, err = strconv.ParseBool(getEnv("SEED_DEMO", seedDefault)); err != nil {
		return Config{}, fmt.Errorf("parse SEED_DEMO: %w", err)
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = parsePositiveDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = parsePositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = parsePositiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = parsePositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPass = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))

	if cfg.ImportWorkers, err = getEnvAsInt("IMPORT_WORKERS", 0); err != nil {
		return Config{}, fmt.Errorf("parse IMPORT_WORKERS: %w", err)
	}
	if cfg.ImportWorkers < 0 {
		return Config{}, fmt.Errorf("IMPORT_WORKERS must be >= 0")
	}

	if cfg.TeamMapThreshold, err = strconv.ParseFloat(getEnv("TEAM_MAP_THRESHOLD", "0.85"), 64); err != nil {
		return Config{}, fmt.Errorf("parse TEAM_MAP_THRESHOLD: %w", err)
	}
	if cfg.TeamMapThreshold <= 0 || cfg.TeamMapThreshold > 1 {
		return Config{}, fmt.Errorf("TEAM_MAP_THRESHOLD must be in (0, 1]")
	}

	if cfg.StatsBombTimeout, err = parsePositiveDuration("STATSBOMB_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.StatsBombMaxRetries, err = getEnvAsInt("STATSBOMB_MAX_RETRIES", 2); err != nil {
		return Config{}, fmt.Errorf("parse STATSBOMB_MAX_RETRIES: %w", err)
	}
	if cfg.StatsBombMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATSBOMB_MAX_RETRIES must be >= 0")
	}
	if cfg.StatsBombCircuit, err = loadBreaker("STATSBOMB_CIRCUIT"); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel, err = logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// loadBreaker reads <prefix>_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and
// _HALF_OPEN_MAX_REQ.
func loadBreaker(prefix string) (resilience.BreakerConfig, error) {
	var (
		out resilience.BreakerConfig
		err error
	)
	if out.Enabled, err = strconv.ParseBool(getEnv(prefix+"_ENABLED", "true")); err != nil {
		return out, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	if out.Threshold, err = getEnvAsInt(prefix+"_FAILURE_COUNT", 5); err != nil {
		return out, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	if out.Threshold < 1 {
		return out, fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}
	if out.Cooldown, err = parsePositiveDuration(prefix+"_OPEN_TIMEOUT", "15s"); err != nil {
		return out, err
	}
	if out.Probes, err = getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", 2); err != nil {
		return out, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if out.Probes < 1 {
		return out, fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return out, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
