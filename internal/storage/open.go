// Package storage picks a snapshot store from a location string.
package storage

import (
	"context"
	"strings"
	"time"

	"hotels/internal/adapters/observability"
	redisad "hotels/internal/adapters/redis"
	"hotels/internal/domain"
	"hotels/internal/storage/file"
	mysqlrepo "hotels/internal/storage/mysql"
)

const (
	KindFile  = "file"
	KindRedis = "redis"
	KindMySQL = "mysql"
)

// Kind reports which backend a location selects:
//
//	redis://[:pass@]host:port/db  (or rediss://)
//	mysql://<go-sql-driver DSN>
//	anything else is a file path.
func Kind(location string) string {
	switch {
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return KindRedis
	case strings.HasPrefix(location, "mysql://"):
		return KindMySQL
	default:
		return KindFile
	}
}

// Open returns an instrumented store for location. name identifies the
// snapshot inside shared backends (redis key, mysql row); files ignore it.
func Open(ctx context.Context, location, name string) (domain.HotelStore, error) {
	var (
		st  domain.HotelStore
		err error
	)
	kind := Kind(location)
	switch kind {
	case KindRedis:
		st, err = redisad.Open(location, name)
	case KindMySQL:
		st, err = mysqlrepo.Open(ctx, strings.TrimPrefix(location, "mysql://"), name)
	default:
		st = file.New(location)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(kind, st), nil
}

type instrumented struct {
	kind string
	next domain.HotelStore
}

// Instrument records prometheus metrics for every Load and Save.
func Instrument(kind string, next domain.HotelStore) domain.HotelStore {
	return &instrumented{kind: kind, next: next}
}

func (s *instrumented) Load(ctx context.Context) (*domain.Hotel, error) {
	start := time.Now()
	h, err := s.next.Load(ctx)
	observability.ObserveStore(s.kind, "load", err, time.Since(start))
	return h, err
}

func (s *instrumented) Save(ctx context.Context, h *domain.Hotel) error {
	start := time.Now()
	err := s.next.Save(ctx, h)
	observability.ObserveStore(s.kind, "save", err, time.Since(start))
	return err
}

func (s *instrumented) Close() error { return s.next.Close() }
