package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the full environment surface of the oracle. It is built
// once at startup and passed by value; nothing mutates it afterwards, which
// keeps concurrent tests with distinct model roots safe.
type Config struct {
	Addr string

	// Artifact storage owned by the external model store. The oracle only
	// constructs paths under this root, it never writes there.
	ModelRoot   string
	ArtifactExt string

	// Optional backends. Empty values disable the feature instead of failing
	// startup: the verification core has no hard dependency on any of them.
	RedisURL     string
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string

	AdminJWTKey string

	RateLimitPerWindow int
	RateLimitWindow    time.Duration

	AuditBufferSize int
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:               envOr("WMORACLE_ADDR", ":8080"),
		ModelRoot:          envOr("WMORACLE_MODEL_ROOT", "models"),
		ArtifactExt:        envOr("WMORACLE_ARTIFACT_EXT", ".pt"),
		RedisURL:           os.Getenv("WMORACLE_REDIS_URL"),
		PostgresDSN:        os.Getenv("WMORACLE_POSTGRES_DSN"),
		KafkaBrokers:       splitList(os.Getenv("WMORACLE_KAFKA_BROKERS")),
		KafkaTopic:         envOr("WMORACLE_KAFKA_TOPIC", "wmoracle.verifications"),
		AdminJWTKey:        os.Getenv("WMORACLE_ADMIN_JWT_KEY"),
		RateLimitPerWindow: envInt("WMORACLE_RATE_LIMIT", 0),
		RateLimitWindow:    envDuration("WMORACLE_RATE_LIMIT_WINDOW", time.Minute),
		AuditBufferSize:    envInt("WMORACLE_AUDIT_BUFFER", 1024),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
