package domain

import "context"

// HotelStore persists a whole hotel as one snapshot. Load returns
// ErrSnapshotNotFound when nothing has been saved yet.
type HotelStore interface {
	Load(ctx context.Context) (*Hotel, error)
	Save(ctx context.Context, h *Hotel) error
	Close() error
}
