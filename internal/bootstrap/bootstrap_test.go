package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"p2pquotes-service/internal/config"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "0",
		PrimaryFiat:     "KES",
		FXProvider:      "fake",
		UpstreamTimeout: time.Second,
		RateStore:       "memory",
		RateFreshness:   time.Hour,
		RefreshEvery:    time.Hour,
		RedisPrefix:     "test:rates:",
	}
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestInitAPI_MemoryStore(t *testing.T) {
	api, cleanup, err := InitAPI(context.Background(), testConfig(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, "KES", api.Service.Primary())
	require.Equal(t, http.StatusOK, get(api.Handler, "/healthz").Code)
	require.Equal(t, http.StatusOK, get(api.Handler, "/readyz").Code)

	rec := get(api.Handler, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "promhttp_metric_handler_requests_total")
}

func TestInitAPI_RedisStoreReadiness(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	cfg := testConfig()
	cfg.RateStore = "redis"
	cfg.RedisAddr = mr.Addr()

	api, cleanup, err := InitAPI(context.Background(), cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, http.StatusOK, get(api.Handler, "/readyz").Code)

	mr.Close()
	require.Equal(t, http.StatusServiceUnavailable, get(api.Handler, "/readyz").Code)
}

func TestInitAPI_UnknownRateStore(t *testing.T) {
	cfg := testConfig()
	cfg.RateStore = "postgres"

	_, _, err := InitAPI(context.Background(), cfg, prometheus.NewRegistry())
	require.ErrorIs(t, err, ErrUnknownRateStore)
}

func TestInitAPI_UnknownFXProvider(t *testing.T) {
	cfg := testConfig()
	cfg.FXProvider = "ecb"

	_, _, err := InitAPI(context.Background(), cfg, prometheus.NewRegistry())
	require.ErrorIs(t, err, ErrUnknownFXProvider)
}

func TestInitWorkerApp_RefreshesIntoSharedStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := testConfig()
	cfg.RateStore = "redis"
	cfg.RedisAddr = mr.Addr()

	run, cleanup, err := InitWorkerApp(context.Background(), cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, run(ctx))

	require.True(t, mr.Exists("test:rates:KES"))
}
