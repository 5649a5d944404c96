package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"p2pquotes-service/internal/domain"
	"p2pquotes-service/internal/infrastructure/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoad(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "KES")
	require.NoError(t, err)
	require.False(t, ok)

	rates := domain.RateTable{"UGX": decimal.NewFromInt(28)}
	now := time.Now()
	require.NoError(t, s.Save(ctx, domain.RateEntry{Base: "KES", Rates: rates, FetchedAt: now}))

	rates["UGX"] = decimal.NewFromInt(1)

	e, ok, err := s.Load(ctx, "KES")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, e.FetchedAt.Equal(now))
	require.True(t, e.Rates["UGX"].Equal(decimal.NewFromInt(28)))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Save(ctx, domain.RateEntry{Base: "KES", Rates: domain.RateTable{"UGX": decimal.NewFromInt(int64(i))}, FetchedAt: time.Now()})
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Load(ctx, "KES")
		}()
	}
	wg.Wait()

	_, ok, err := s.Load(ctx, "KES")
	require.NoError(t, err)
	require.True(t, ok)
}
