package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service. FromEnv keeps
// main lean; empty optional values mean the dependency is not configured.
type Config struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	KafkaTopic    string
	JWTSigningKey string
	LockTTL       time.Duration
}

// FromEnv builds the config from environment variables with development
// defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:          getenv("RAZEFLOW_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaTopic:    getenv("KAFKA_AUDIT_TOPIC", "razeflow.audit"),
		JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		LockTTL:       30 * time.Second,
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
