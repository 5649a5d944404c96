package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/config"
	"p2pquotes-service/internal/domain"
	infracfg "p2pquotes-service/internal/infrastructure/config"
	"p2pquotes-service/internal/infrastructure/httpx"
	"p2pquotes-service/internal/infrastructure/logx"
	"p2pquotes-service/internal/infrastructure/memstore"
	"p2pquotes-service/internal/infrastructure/metrics"
	"p2pquotes-service/internal/infrastructure/provider"
	redisstore "p2pquotes-service/internal/infrastructure/redis"
	"p2pquotes-service/internal/infrastructure/venue"
	"p2pquotes-service/internal/infrastructure/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrUnknownRateStore  = errors.New("unknown RATE_STORE")
	ErrUnknownFXProvider = errors.New("unknown FX_PROVIDER")
)

// ReadyCheck probes a dependency for /readyz; nil means always ready.
type ReadyCheck func(ctx context.Context) error

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideMetrics(reg prometheus.Registerer) *metrics.Metrics { return metrics.New(reg) }

func ProvideRedisClient(cfg config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }, nil
}

// ProvideRateStore selects the rate store by RATE_STORE ("memory" or "redis").
func ProvideRateStore(cfg config.Config, log *zap.Logger) (application.RateStore, ReadyCheck, func(), error) {
	switch cfg.RateStore {
	case "", "memory":
		return memstore.New(), nil, func() {}, nil
	case "redis":
		client, cleanup, err := ProvideRedisClient(cfg)
		if err != nil {
			return nil, nil, func() {}, err
		}
		store := redisstore.New(client, cfg.RedisPrefix, cfg.RateFreshness)
		log.Info("rate_store.redis", zap.String("addr", cfg.RedisAddr), zap.String("prefix", cfg.RedisPrefix))
		return store, store.Ping, cleanup, nil
	default:
		return nil, nil, func() {}, fmt.Errorf("%w: %q", ErrUnknownRateStore, cfg.RateStore)
	}
}

func ProvideHTTPClient(name string, cfg config.Config, m *metrics.Metrics) *httpx.Client {
	c := httpx.New(name, cfg.UpstreamTimeout)
	c.Retries = cfg.UpstreamRetries
	if m != nil {
		c.Observer = m
	}
	return c
}

func ProvideRateSource(cfg config.Config, m *metrics.Metrics) (application.RateSource, error) {
	switch cfg.FXProvider {
	case "", "erapi":
		return &provider.OpenERAPIProvider{
			BaseURL: infracfg.FXBaseURL,
			Client:  ProvideHTTPClient("erapi", cfg, m),
		}, nil
	case "fake":
		return provider.NewFake(1), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFXProvider, cfg.FXProvider)
	}
}

func ProvideVenues(cfg config.Config, m *metrics.Metrics) []application.VenueAdapter {
	return []application.VenueAdapter{
		&venue.Binance{
			BaseURL: infracfg.BinanceBaseURL,
			Rows:    infracfg.DefaultVenueRows,
			Client:  ProvideHTTPClient("binance", cfg, m),
		},
		&venue.OKX{
			BaseURL: infracfg.OKXBaseURL,
			Rows:    infracfg.DefaultVenueRows,
			Client:  ProvideHTTPClient("okx", cfg, m),
		},
	}
}

func ProvideRateCache(src application.RateSource, store application.RateStore, cfg config.Config, log *zap.Logger, m *metrics.Metrics) *application.CachedRates {
	opts := []application.CacheOption{
		application.WithFreshness(cfg.RateFreshness),
		application.WithCacheLogger(log),
	}
	if m != nil {
		opts = append(opts, application.WithCacheObserver(m))
	}
	return application.NewCachedRates(src, store, opts...)
}

func ProvideAggregator(cache application.RateCache, venues []application.VenueAdapter, cfg config.Config) *application.AggregatorService {
	return application.NewAggregatorService(cache, venues, infracfg.Spreads(),
		application.WithPrimary(cfg.PrimaryFiat),
		application.WithCallTimeout(cfg.UpstreamTimeout),
	)
}

func ProvideWorker(cache application.RefreshableCache, cfg config.Config, log *zap.Logger, m *metrics.Metrics) application.Worker {
	if cfg.RateStore == "" || cfg.RateStore == "memory" {
		log.Warn("rate_refresher.process_local_store", zap.String("rate_store", "memory"))
	}
	w := &worker.RateRefresher{
		Cache:   cache,
		Base:    cfg.PrimaryFiat,
		Targets: domain.Spreads(infracfg.Spreads()).Except(cfg.PrimaryFiat),
		Every:   cfg.RefreshEvery,
		Timeout: cfg.UpstreamTimeout,
		Log:     log.With(zap.String("worker", "rate_refresher")),
	}
	if m != nil {
		w.Observer = m
	}
	return w
}
