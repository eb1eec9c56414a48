package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 4, cfg.Inspector.Workers)
	assert.Equal(t, 64, cfg.Inspector.QueueSize)
	assert.Equal(t, time.Hour, cfg.Inspector.ResultTTL)
	assert.Equal(t, 5*time.Minute, cfg.Inspector.SandboxIdleTTL)
	assert.Equal(t, "/", cfg.Inspector.ExportRoot)
	assert.False(t, cfg.Postgres.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Statsd.Enabled())
	assert.Equal(t, "layerpeek", cfg.Statsd.Prefix)
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("INSPECTOR_WORKERS", "8")
	t.Setenv("INSPECTOR_RESULT_TTL", "30m")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_ADDR", "cache.internal:6379")
	t.Setenv("STATSD_ADDR", "metrics.internal:8125")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 8, cfg.Inspector.Workers)
	assert.Equal(t, 30*time.Minute, cfg.Inspector.ResultTTL)
	assert.True(t, cfg.Postgres.Enabled())
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Statsd.Enabled())
}

func TestInspectorSanitizeClamps(t *testing.T) {
	cfg := InspectorConfig{
		Workers:        500,
		QueueSize:      100000,
		ResultTTL:      -time.Minute,
		SandboxIdleTTL: 0,
	}
	cfg.Sanitize()

	assert.Equal(t, maxInspectorWorkers, cfg.Workers)
	assert.Equal(t, maxQueueSize, cfg.QueueSize)
	assert.Equal(t, time.Hour, cfg.ResultTTL)
	assert.Equal(t, 5*time.Minute, cfg.SandboxIdleTTL)
	assert.Equal(t, "/", cfg.ExportRoot)
}

func TestInspectorSanitizeFloors(t *testing.T) {
	cfg := InspectorConfig{Workers: -1, QueueSize: 0, ResultTTL: time.Minute, SandboxIdleTTL: time.Second, ExportRoot: "/usr"}
	cfg.Sanitize()

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 1, cfg.QueueSize)
	assert.Equal(t, time.Minute, cfg.ResultTTL)
	assert.Equal(t, time.Second, cfg.SandboxIdleTTL)
	assert.Equal(t, "/usr", cfg.ExportRoot)
}
