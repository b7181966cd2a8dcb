package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string
	DBMaxConns         int32
	MigrateOnStart     bool
	TrustProxyHeaders  bool

	ListDefaultLimit int
	ListMaxLimit     int

	ReconcileDefaultStrategy string
	ReconcileDefaultMode     string

	IdempotencyTTL  time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
	BodyLimitBytes  int64

	Obs    ObsConfig
	Health HealthConfig
}

// ObsConfig groups logging, metrics and tracing settings.
type ObsConfig struct {
	LogFormat            string
	LogLevel             string
	MetricsNamespace     string
	MetricsBuckets       []float64
	EnablePrometheus     bool
	EnableTracing        bool
	OTLPEndpoint         string
	TracingSamplingRatio float64
	ServiceName          string
}

// HealthConfig bounds the readiness probes.
type HealthConfig struct {
	DBTimeout    time.Duration
	RedisTimeout time.Duration
}

var (
	strategies = []string{"sum", "replace", "reject", "nothing"}
	modes      = []string{"independent", "joined"}
)

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		DBMaxConns:         int32(parseInt(k.String("DB_MAX_CONNS"), 10)),
		MigrateOnStart:     parseBool(k.String("MIGRATE_ON_START")),
		TrustProxyHeaders:  parseBool(k.String("TRUST_PROXY_HEADERS")),

		ListDefaultLimit: parseInt(k.String("LIST_DEFAULT_LIMIT"), 100),
		ListMaxLimit:     parseInt(k.String("LIST_MAX_LIMIT"), 1000),

		ReconcileDefaultStrategy: strings.ToLower(valueOrDefault(k.String("RECONCILE_DEFAULT_STRATEGY"), "sum")),
		ReconcileDefaultMode:     strings.ToLower(valueOrDefault(k.String("RECONCILE_DEFAULT_MODE"), "independent")),

		IdempotencyTTL:  parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		RateLimitWindow: parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:    parseInt(k.String("RATE_LIMIT_MAX"), 120),
		BodyLimitBytes:  int64(parseInt(k.String("BODY_LIMIT_BYTES"), 1<<20)),

		Obs: ObsConfig{
			LogFormat:            valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
			LogLevel:             valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
			MetricsNamespace:     valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "editions"),
			MetricsBuckets:       parseBuckets(k.String("OBS_METRICS_BUCKETS")),
			EnablePrometheus:     parseBoolDefault(k.String("OBS_ENABLE_PROMETHEUS"), true),
			EnableTracing:        parseBool(k.String("OBS_ENABLE_TRACING")),
			OTLPEndpoint:         strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
			TracingSamplingRatio: parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1),
			ServiceName:          valueOrDefault(k.String("OBS_SERVICE_NAME"), "backend-editions"),
		},
		Health: HealthConfig{
			DBTimeout:    parseDuration(k.String("HEALTH_READY_DB_TIMEOUT"), "2s"),
			RedisTimeout: parseDuration(k.String("HEALTH_READY_REDIS_TIMEOUT"), "1s"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.ListDefaultLimit < 1 || cfg.ListMaxLimit < cfg.ListDefaultLimit {
		return nil, fmt.Errorf("invalid list limits: default %d, max %d", cfg.ListDefaultLimit, cfg.ListMaxLimit)
	}
	if !slices.Contains(strategies, cfg.ReconcileDefaultStrategy) {
		return nil, fmt.Errorf("RECONCILE_DEFAULT_STRATEGY must be one of %s", strings.Join(strategies[:3], ", "))
	}
	if !slices.Contains(modes, cfg.ReconcileDefaultMode) {
		return nil, fmt.Errorf("RECONCILE_DEFAULT_MODE must be one of %s", strings.Join(modes, ", "))
	}
	if cfg.Obs.TracingSamplingRatio < 0 || cfg.Obs.TracingSamplingRatio > 1 {
		return nil, errors.New("OBS_TRACING_SAMPLING_RATIO must be within [0,1]")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseBoolDefault(value string, fallback bool) bool {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return parseBool(value)
}

func parseInt(value string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return v
}

func parseFloat(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseBuckets(value string) []float64 {
	var out []float64
	for _, part := range splitAndTrim(value) {
		if v, err := strconv.ParseFloat(part, 64); err == nil && v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
