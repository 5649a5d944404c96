package application

import (
	"context"
	"fmt"
	"time"

	"p2pquotes-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

const DefaultCallTimeout = 5 * time.Second

// AggregatorService assembles the combined P2P quote table for a primary fiat.
type AggregatorService struct {
	rates       RateCache
	venues      []VenueAdapter
	spreads     domain.Spreads
	primary     string
	callTimeout time.Duration
	clock       Clock
}

type Option func(*AggregatorService)

func WithClock(c Clock) Option { return func(s *AggregatorService) { s.clock = c } }
func WithPrimary(code string) Option { return func(s *AggregatorService) { s.primary = code } }
func WithCallTimeout(d time.Duration) Option { return func(s *AggregatorService) { s.callTimeout = d } }

func NewAggregatorService(rates RateCache, venues []VenueAdapter, spreads domain.Spreads, opts ...Option) *AggregatorService {
	s := &AggregatorService{
		rates:   rates,
		venues:  venues,
		spreads: spreads,
		primary: "KES",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.callTimeout <= 0 {
		s.callTimeout = DefaultCallTimeout
	}
	return s
}

func (s *AggregatorService) Primary() string { return s.primary }

// Snapshot fetches rates and every venue side concurrently and derives the
// secondary currencies. Any upstream failure fails the whole snapshot.
func (s *AggregatorService) Snapshot(ctx context.Context, fiat string) (domain.Snapshot, error) {
	if fiat == "" {
		fiat = s.primary
	}
	if !domain.ValidateCurrency(fiat) {
		return domain.Snapshot{}, fmt.Errorf("%w: fiat %q", ErrBadRequest, fiat)
	}
	targets := s.spreads.Except(fiat)

	g, gctx := errgroup.WithContext(ctx)

	var rates domain.RateTable
	if len(targets) > 0 {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, s.callTimeout)
			defer cancel()
			r, err := s.rates.GetRates(cctx, fiat, targets)
			if err != nil {
				return err
			}
			rates = r
			return nil
		})
	}

	books := make([]domain.QuoteSet, len(s.venues))
	for i, v := range s.venues {
		for _, side := range domain.Sides {
			g.Go(func() error {
				cctx, cancel := context.WithTimeout(gctx, s.callTimeout)
				defer cancel()
				qs, err := v.FetchQuotes(cctx, fiat, side)
				if err != nil {
					return fmt.Errorf("%s %s: %w", v.Name(), side, err)
				}
				if qs == nil {
					qs = []domain.Quote{}
				}
				if side == domain.SideBuy {
					books[i].Buy = qs
				} else {
					books[i].Sell = qs
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return domain.Snapshot{}, err
	}

	snap := domain.Snapshot{
		Timestamp:  s.clock.Now(),
		Primary:    fiat,
		Currencies: make(map[string]domain.CurrencyBlock, len(targets)+1),
	}
	primary := domain.CurrencyBlock{Venues: make(map[string]domain.QuoteSet, len(s.venues))}
	for i, v := range s.venues {
		primary.Venues[v.Name()] = books[i]
	}
	snap.Currencies[fiat] = primary

	for _, code := range targets {
		factor := rates[code]
		spread := s.spreads[code]
		block := domain.CurrencyBlock{DerivedFrom: fiat, Venues: make(map[string]domain.QuoteSet, len(s.venues))}
		for i, v := range s.venues {
			block.Venues[v.Name()] = domain.QuoteSet{
				Buy:  domain.Derive(books[i].Buy, factor, spread, domain.SideBuy),
				Sell: domain.Derive(books[i].Sell, factor, spread, domain.SideSell),
			}
		}
		snap.Currencies[code] = block
	}
	return snap, nil
}
