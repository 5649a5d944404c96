package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"p2pquotes-service/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type WorkerApp func(ctx context.Context) error

// InitWorkerApp builds the rate refresher and, when WORKER_METRICS_ADDR is set,
// a metrics listener that lives as long as the refresher.
func InitWorkerApp(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (WorkerApp, func(), error) {
	log := ProvideLogger()
	m := ProvideMetrics(reg)

	store, _, cleanup, err := ProvideRateStore(cfg, log)
	if err != nil {
		return nil, func() {}, fmt.Errorf("rate store: %w", err)
	}
	src, err := ProvideRateSource(cfg, m)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("rate source: %w", err)
	}
	w := ProvideWorker(ProvideRateCache(src, store, cfg, log, m), cfg, log, m)

	g, ok := reg.(prometheus.Gatherer)
	if cfg.WorkerMetricsAddr == "" || !ok {
		return func(ctx context.Context) error {
			w.Start(ctx)
			return nil
		}, cleanup, nil
	}

	run := func(ctx context.Context) error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
		ms := &http.Server{Addr: cfg.WorkerMetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		eg, egctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			log.Info("worker_metrics.listening", zap.String("addr", cfg.WorkerMetricsAddr))
			if err := ms.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics listener: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			w.Start(egctx)
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return ms.Shutdown(shCtx)
		})
		return eg.Wait()
	}
	return run, cleanup, nil
}
