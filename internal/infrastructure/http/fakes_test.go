package httpserver

import (
	"context"
	"sync"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/domain"

	"github.com/shopspring/decimal"
)

var _ application.RateCache = (*fakeRates)(nil)
var _ application.VenueAdapter = (*fakeVenue)(nil)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeRates struct {
	rates domain.RateTable
	err   error
}

func (f *fakeRates) GetRates(_ context.Context, _ string, _ []string) (domain.RateTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rates.Clone(), nil
}

type fakeVenue struct {
	name string
	buy  []domain.Quote
	sell []domain.Quote
	err  error
}

func (f *fakeVenue) Name() string { return f.name }

func (f *fakeVenue) FetchQuotes(_ context.Context, _ string, side domain.Side) ([]domain.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	if side == domain.SideBuy {
		return f.buy, nil
	}
	return f.sell, nil
}

type countingObserver struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (c *countingObserver) Snapshot(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.ok++
	} else {
		c.failed++
	}
}

// NewInMemoryService wires an aggregator over canned upstreams.
func NewInMemoryService(rates *fakeRates, venues ...application.VenueAdapter) *application.AggregatorService {
	spreads := domain.Spreads{"UGX": dec("0.012"), "TZS": dec("0.010")}
	return application.NewAggregatorService(rates, venues, spreads)
}

func healthyUpstreams() (*fakeRates, []application.VenueAdapter) {
	rates := &fakeRates{rates: domain.RateTable{"UGX": dec("130.5"), "TZS": dec("20")}}
	binance := &fakeVenue{
		name: "binance",
		buy:  []domain.Quote{{Price: dec("150"), Min: dec("1000"), Max: dec("20000")}},
		sell: []domain.Quote{{Price: dec("140"), Min: dec("500"), Max: dec("9000")}},
	}
	okx := &fakeVenue{name: "okx", buy: []domain.Quote{}, sell: []domain.Quote{}}
	return rates, []application.VenueAdapter{binance, okx}
}
