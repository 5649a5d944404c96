package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/config"
	httpserver "p2pquotes-service/internal/infrastructure/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// API is the assembled HTTP side of the service.
type API struct {
	Handler http.Handler
	Server  *httpserver.Server
	Service *application.AggregatorService
}

// InitAPI wires the rate store, upstream adapters, cache and aggregator behind
// the router. Collectors are registered on reg, which must also be a Gatherer
// to be served on /metrics.
func InitAPI(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*API, func(), error) {
	log := ProvideLogger()
	m := ProvideMetrics(reg)

	store, ready, cleanup, err := ProvideRateStore(cfg, log)
	if err != nil {
		return nil, func() {}, fmt.Errorf("rate store: %w", err)
	}
	src, err := ProvideRateSource(cfg, m)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("rate source: %w", err)
	}
	cache := ProvideRateCache(src, store, cfg, log, m)
	svc := ProvideAggregator(cache, ProvideVenues(cfg, m), cfg)

	srv := httpserver.NewServer(svc)
	srv.SetSnapshotObserver(m)
	if ready != nil {
		srv.SetReadyCheck(ready)
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		srv.SetMetricsHandler(promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	}
	return &API{Handler: httpserver.NewRouter(srv), Server: srv, Service: svc}, cleanup, nil
}
