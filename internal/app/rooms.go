package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"hotels/internal/adapters/observability"
	"hotels/internal/domain"
)

// BookResult reports a booking attempt. No free room is a normal outcome,
// not an error.
type BookResult struct {
	Booked bool
	Room   int
}

// AddRoom validates req and appends the room to h.
func AddRoom(h *domain.Hotel, req AddRoomRequest, l zerolog.Logger) error {
	if err := Validate(req); err != nil {
		return err
	}
	h.AddRoom(req.Number, req.Beds)
	observability.ObserveRoomAdded()
	l.Debug().Int("number", req.Number).Int("beds", req.Beds).Msg("room added")
	return nil
}

// Book validates req and attempts the booking on h.
func Book(h *domain.Hotel, req BookRequest, l zerolog.Logger) (BookResult, error) {
	if err := Validate(req); err != nil {
		return BookResult{}, err
	}
	r, err := h.Book(req.Start, req.Duration, req.Beds)
	if errors.Is(err, domain.ErrNoFreeRoom) {
		observability.ObserveBooking(false)
		l.Info().Str("start", req.Start.String()).Int("beds", req.Beds).Msg("no free room")
		return BookResult{}, nil
	}
	if err != nil {
		return BookResult{}, err
	}
	observability.ObserveBooking(true)
	l.Info().
		Int("room", r.Number()).
		Str("start", req.Start.String()).
		Int("duration", req.Duration).
		Msg("room booked")
	return BookResult{Booked: true, Room: r.Number()}, nil
}

// WriteRoomTable prints rooms as a fixed-width table.
func WriteRoomTable(w io.Writer, rooms []*domain.Room) error {
	if _, err := fmt.Fprintln(w, "|  No  |  BEDS  |"); err != nil {
		return err
	}
	for _, r := range rooms {
		if _, err := fmt.Fprintf(w, "| %04d | %6d |\n", r.Number(), r.Beds()); err != nil {
			return err
		}
	}
	return nil
}
