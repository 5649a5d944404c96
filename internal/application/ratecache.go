package application

import (
	"context"
	"fmt"
	"time"

	"p2pquotes-service/internal/domain"

	"go.uber.org/zap"
)

const DefaultFreshness = time.Hour

// CacheObserver is notified of cache hits and misses.
type CacheObserver interface {
	CacheResult(hit bool)
}

// CachedRates serves rate tables from a RateStore while they are younger than
// the freshness window and refreshes them from a RateSource otherwise. A failed
// refresh is returned to the caller; stale entries are never served.
// Concurrent misses may refresh more than once.
type CachedRates struct {
	source   RateSource
	store    RateStore
	window   time.Duration
	clock    Clock
	log      *zap.Logger
	observer CacheObserver
}

type CacheOption func(*CachedRates)

func WithCacheClock(c Clock) CacheOption { return func(r *CachedRates) { r.clock = c } }
func WithFreshness(d time.Duration) CacheOption { return func(r *CachedRates) { r.window = d } }
func WithCacheLogger(l *zap.Logger) CacheOption { return func(r *CachedRates) { r.log = l } }
func WithCacheObserver(o CacheObserver) CacheOption { return func(r *CachedRates) { r.observer = o } }

func NewCachedRates(source RateSource, store RateStore, opts ...CacheOption) *CachedRates {
	r := &CachedRates{source: source, store: store}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = realClock{}
	}
	if r.window <= 0 {
		r.window = DefaultFreshness
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

var _ RefreshableCache = (*CachedRates)(nil)

func (r *CachedRates) GetRates(ctx context.Context, base string, targets []string) (domain.RateTable, error) {
	e, ok, err := r.store.Load(ctx, base)
	// Reads under a canceled context fail for the caller's reason, not the store's.
	if err != nil && ctx.Err() == nil {
		r.log.Warn("rate_cache.load_failed", zap.String("base", base), zap.Error(err))
	}
	if ok && e.FreshAt(r.clock.Now(), r.window) && e.Rates.Covers(targets) {
		r.observe(true)
		return e.Rates.Clone(), nil
	}
	r.observe(false)
	return r.Refresh(ctx, base, targets)
}

// Refresh fetches a new table unconditionally and replaces the stored entry.
func (r *CachedRates) Refresh(ctx context.Context, base string, targets []string) (domain.RateTable, error) {
	rates, err := r.source.FetchConversionFactors(ctx, base, targets)
	if err != nil {
		return nil, fmt.Errorf("refresh rates %s: %w", base, err)
	}
	e := domain.RateEntry{Base: base, Rates: rates, FetchedAt: r.clock.Now()}
	if err := r.store.Save(ctx, e); err != nil {
		r.log.Warn("rate_cache.save_failed", zap.String("base", base), zap.Error(err))
	}
	r.log.Info("rate_cache.refresh", zap.String("base", base), zap.Int("rates", len(rates)))
	return rates.Clone(), nil
}

func (r *CachedRates) observe(hit bool) {
	if r.observer != nil {
		r.observer.CacheResult(hit)
	}
}
