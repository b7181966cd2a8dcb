package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":               "postgres://localhost/editions",
		"REDIS_URL":                  "",
		"LIST_DEFAULT_LIMIT":         "",
		"LIST_MAX_LIMIT":             "",
		"RECONCILE_DEFAULT_STRATEGY": "",
		"RECONCILE_DEFAULT_MODE":     "",
		"RATE_LIMIT_WINDOW":          "",
		"OBS_ENABLE_PROMETHEUS":      "",
		"TRUST_PROXY_HEADERS":        "",
	})
	require.NoError(t, err)
	require.Equal(t, 100, cfg.ListDefaultLimit)
	require.Equal(t, 1000, cfg.ListMaxLimit)
	require.Equal(t, "sum", cfg.ReconcileDefaultStrategy)
	require.Equal(t, "independent", cfg.ReconcileDefaultMode)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.True(t, cfg.Obs.EnablePrometheus)
	require.Empty(t, cfg.RedisURL)
	require.False(t, cfg.TrustProxyHeaders)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":               "postgres://localhost/editions",
		"PORT":                       "9090",
		"RECONCILE_DEFAULT_STRATEGY": "Replace",
		"RECONCILE_DEFAULT_MODE":     "joined",
		"LIST_DEFAULT_LIMIT":         "25",
		"OBS_METRICS_BUCKETS":        "5, 50,abc,-1",
		"TRUST_PROXY_HEADERS":        "true",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, "replace", cfg.ReconcileDefaultStrategy)
	require.Equal(t, "joined", cfg.ReconcileDefaultMode)
	require.Equal(t, 25, cfg.ListDefaultLimit)
	require.Equal(t, []float64{5, 50}, cfg.Obs.MetricsBuckets)
	require.True(t, cfg.TrustProxyHeaders)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := LoadForTests(map[string]string{"DATABASE_URL": ""})
	require.Error(t, err)

	_, err = LoadForTests(map[string]string{
		"DATABASE_URL":               "postgres://localhost/editions",
		"RECONCILE_DEFAULT_STRATEGY": "merge",
	})
	require.ErrorContains(t, err, "RECONCILE_DEFAULT_STRATEGY")

	_, err = LoadForTests(map[string]string{
		"DATABASE_URL":           "postgres://localhost/editions",
		"RECONCILE_DEFAULT_MODE": "nested",
	})
	require.ErrorContains(t, err, "RECONCILE_DEFAULT_MODE")
}
