package redisad

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hotels/internal/domain"
	"hotels/internal/storage/snapshot"
)

const keyPrefix = "hotels:snapshot:"

// Store keeps the snapshot as a single string value under one key.
type Store struct {
	c   *redis.Client
	key string
}

func New(c *redis.Client, name string) *Store {
	return &Store{c: c, key: keyPrefix + name}
}

// Open parses a redis:// (or rediss://) URL, e.g. redis://:pass@localhost:6379/0.
func Open(rawURL, name string) (*Store, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return New(redis.NewClient(opt), name), nil
}

func (s *Store) Key() string { return s.key }

func (s *Store) Load(ctx context.Context) (*domain.Hotel, error) {
	v, err := s.c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return snapshot.Decode(v)
}

func (s *Store) Save(ctx context.Context, h *domain.Hotel) error {
	b, err := snapshot.Encode(h)
	if err != nil {
		return err
	}
	if err := s.c.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.c.Close() }
