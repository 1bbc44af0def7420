package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "models", cfg.ModelRoot)
	assert.Equal(t, ".pt", cfg.ArtifactExt)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "wmoracle.verifications", cfg.KafkaTopic)
	assert.Equal(t, 0, cfg.RateLimitPerWindow)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 1024, cfg.AuditBufferSize)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WMORACLE_ADDR", ":9090")
	t.Setenv("WMORACLE_MODEL_ROOT", "/var/lib/wmoracle/models")
	t.Setenv("WMORACLE_KAFKA_BROKERS", "broker-a:9092, broker-b:9092,")
	t.Setenv("WMORACLE_RATE_LIMIT", "50")
	t.Setenv("WMORACLE_RATE_LIMIT_WINDOW", "30s")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/var/lib/wmoracle/models", cfg.ModelRoot)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 50, cfg.RateLimitPerWindow)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
	t.Setenv("WMORACLE_RATE_LIMIT", "lots")
	t.Setenv("WMORACLE_RATE_LIMIT_WINDOW", "soon")

	cfg := FromEnv()

	assert.Equal(t, 0, cfg.RateLimitPerWindow)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}
