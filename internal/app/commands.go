package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"hotels/internal/domain"
)

// Service runs one-shot operations: load the whole hotel, change it in
// memory, save the whole hotel.
type Service struct {
	store domain.HotelStore
	log   zerolog.Logger
}

func NewService(s domain.HotelStore, l zerolog.Logger) *Service {
	return &Service{store: s, log: l}
}

// LoadOrCreate returns the stored hotel, or a fresh default one when the
// store is empty.
func LoadOrCreate(ctx context.Context, s domain.HotelStore) (*domain.Hotel, error) {
	h, err := s.Load(ctx)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return domain.NewDefault(), nil
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) LoadOrCreate(ctx context.Context) (*domain.Hotel, error) {
	return LoadOrCreate(ctx, s.store)
}

// Update sets name and/or address; empty values leave a field unchanged.
func (s *Service) Update(ctx context.Context, name, address string) error {
	h, err := s.LoadOrCreate(ctx)
	if err != nil {
		return err
	}
	if name != "" {
		h.Name = name
	}
	if address != "" {
		h.Address = address
	}
	return s.save(ctx, h)
}

func (s *Service) Display(ctx context.Context, w io.Writer) error {
	h, err := s.LoadOrCreate(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", h.Name, h.Address); err != nil {
		return err
	}
	return WriteRoomTable(w, h.Rooms())
}

func (s *Service) AddRoom(ctx context.Context, req AddRoomRequest) error {
	h, err := s.LoadOrCreate(ctx)
	if err != nil {
		return err
	}
	if err := AddRoom(h, req, s.log); err != nil {
		return err
	}
	return s.save(ctx, h)
}

// Book persists the hotel whatever the outcome of the attempt. Invalid
// requests are rejected before anything is saved.
func (s *Service) Book(ctx context.Context, req BookRequest) (BookResult, error) {
	h, err := s.LoadOrCreate(ctx)
	if err != nil {
		return BookResult{}, err
	}
	res, err := Book(h, req, s.log)
	if err != nil {
		return BookResult{}, err
	}
	return res, s.save(ctx, h)
}

func (s *Service) save(ctx context.Context, h *domain.Hotel) error {
	if err := s.store.Save(ctx, h); err != nil {
		s.log.Error().Err(err).Str("hotel", h.Name).Msg("save failed")
		return fmt.Errorf("save hotel: %w", err)
	}
	s.log.Debug().Str("hotel", h.Name).Int("rooms", len(h.Rooms())).Msg("hotel saved")
	return nil
}
