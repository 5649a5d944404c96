package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port        string
	PrimaryFiat string
	// Upstreams
	FXProvider      string
	UpstreamTimeout time.Duration
	UpstreamRetries int
	// Rate cache
	RateStore     string
	RateFreshness time.Duration
	// Worker
	RefreshEvery      time.Duration
	WorkerMetricsAddr string
	// Redis (rate store)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func msDef(key string, defMS int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, strconv.Itoa(defMS)), defMS)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:               getEnv("ENV", "local"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Port:              getEnv("PORT", "3000"),
		PrimaryFiat:       getEnv("PRIMARY_FIAT", "KES"),
		FXProvider:        getEnv("FX_PROVIDER", "erapi"),
		UpstreamTimeout:   msDef("UPSTREAM_TIMEOUT_MS", 5000),
		UpstreamRetries:   atoiDef(getEnv("UPSTREAM_RETRIES", "0"), 0),
		RateStore:         getEnv("RATE_STORE", "memory"),
		RateFreshness:     msDef("RATE_FRESHNESS_MS", 3600000),
		RefreshEvery:      msDef("REFRESH_EVERY_MS", 3300000),
		WorkerMetricsAddr: os.Getenv("WORKER_METRICS_ADDR"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisPrefix:       getEnv("REDIS_PREFIX", "p2pquotes:rates:"),
	}
}
