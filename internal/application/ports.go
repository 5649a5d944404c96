package application

import (
	"context"

	"p2pquotes-service/internal/domain"
)

// RateSource fetches mid-market conversion factors for targets relative to base.
type RateSource interface {
	FetchConversionFactors(ctx context.Context, base string, targets []string) (domain.RateTable, error)
}

// RateStore keeps the last fetched rate entry per base currency.
type RateStore interface {
	Load(ctx context.Context, base string) (domain.RateEntry, bool, error)
	Save(ctx context.Context, e domain.RateEntry) error
}

type RateCache interface {
	GetRates(ctx context.Context, base string, targets []string) (domain.RateTable, error)
}

// VenueAdapter fetches one side of a P2P venue's book for a fiat currency.
type VenueAdapter interface {
	Name() string
	FetchQuotes(ctx context.Context, fiat string, side domain.Side) ([]domain.Quote, error)
}

// RefreshableCache is a RateCache that can be forced to refetch.
type RefreshableCache interface {
	RateCache
	Refresh(ctx context.Context, base string, targets []string) (domain.RateTable, error)
}
