package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Store keeps one JSON-encoded rate entry per base currency. Entries expire
// after TTL so Redis never holds tables older than the freshness window.
type Store struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

var _ application.RateStore = (*Store)(nil)

func New(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{Client: client, Prefix: prefix, TTL: ttl}
}

func (s *Store) key(base string) string { return s.Prefix + base }

func (s *Store) Load(ctx context.Context, base string) (domain.RateEntry, bool, error) {
	raw, err := s.Client.Get(ctx, s.key(base)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RateEntry{}, false, nil
	}
	if err != nil {
		return domain.RateEntry{}, false, fmt.Errorf("redis get %s: %w", base, err)
	}
	var e domain.RateEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.RateEntry{}, false, fmt.Errorf("decode rate entry %s: %w", base, err)
	}
	return e, true, nil
}

func (s *Store) Save(ctx context.Context, e domain.RateEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode rate entry %s: %w", e.Base, err)
	}
	if err := s.Client.Set(ctx, s.key(e.Base), raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", e.Base, err)
	}
	return nil
}

// Ping is used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
