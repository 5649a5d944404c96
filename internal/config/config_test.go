package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PRIMARY_FIAT", "RATE_STORE", "RATE_FRESHNESS_MS", "UPSTREAM_TIMEOUT_MS", "UPSTREAM_RETRIES", "FX_PROVIDER"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "KES", cfg.PrimaryFiat)
	require.Equal(t, "memory", cfg.RateStore)
	require.Equal(t, time.Hour, cfg.RateFreshness)
	require.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	require.Zero(t, cfg.UpstreamRetries)
	require.Equal(t, "erapi", cfg.FXProvider)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("RATE_STORE", "redis")
	t.Setenv("UPSTREAM_TIMEOUT_MS", "1500")
	t.Setenv("UPSTREAM_RETRIES", "nope")

	cfg := Load()
	require.Equal(t, "8081", cfg.Port)
	require.Equal(t, "redis", cfg.RateStore)
	require.Equal(t, 1500*time.Millisecond, cfg.UpstreamTimeout)
	require.Zero(t, cfg.UpstreamRetries)
}
