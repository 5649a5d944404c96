package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"p2pquotes-service/internal/domain"

	"github.com/shopspring/decimal"
)

var errUpstream = errors.New("upstream down")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeRateSource struct {
	mu    sync.Mutex
	rates domain.RateTable
	err   error
	calls int
	bases []string
}

func (f *fakeRateSource) FetchConversionFactors(_ context.Context, base string, _ []string) (domain.RateTable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.bases = append(f.bases, base)
	if f.err != nil {
		return nil, f.err
	}
	return f.rates.Clone(), nil
}

func (f *fakeRateSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memStore struct {
	mu      sync.Mutex
	entries map[string]domain.RateEntry
}

func (m *memStore) Load(_ context.Context, base string) (domain.RateEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[base]
	return e, ok, nil
}

func (m *memStore) Save(_ context.Context, e domain.RateEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = map[string]domain.RateEntry{}
	}
	m.entries[e.Base] = e
	return nil
}

type fakeVenue struct {
	name  string
	buy   []domain.Quote
	sell  []domain.Quote
	err   error
	mu    sync.Mutex
	fiats []string
}

func (f *fakeVenue) Name() string { return f.name }

func (f *fakeVenue) FetchQuotes(_ context.Context, fiat string, side domain.Side) ([]domain.Quote, error) {
	f.mu.Lock()
	f.fiats = append(f.fiats, fiat)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if side == domain.SideBuy {
		return f.buy, nil
	}
	return f.sell, nil
}

type countingObserver struct {
	mu         sync.Mutex
	hits, miss int
}

func (o *countingObserver) CacheResult(hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.miss++
	}
}
