// Package snapshot defines the versioned document a hotel is persisted as.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"hotels/internal/domain"
)

// Version is the only document version this build reads and writes.
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrMissingDate        = errors.New("snapshot: missing date")
)

type document struct {
	Version int          `json:"version"`
	Name    string       `json:"name"`
	Address string       `json:"address"`
	Rooms   []roomRecord `json:"rooms"`
}

type roomRecord struct {
	Number int           `json:"number"`
	Beds   int           `json:"beds"`
	Dates  []domain.Date `json:"dates"`
}

func Encode(h *domain.Hotel) ([]byte, error) {
	rooms := h.Rooms()
	doc := document{
		Version: Version,
		Name:    h.Name,
		Address: h.Address,
		Rooms:   make([]roomRecord, 0, len(rooms)),
	}
	for _, r := range rooms {
		st := r.State()
		doc.Rooms = append(doc.Rooms, roomRecord{Number: st.Number, Beds: st.Beds, Dates: st.Dates})
	}
	return json.MarshalIndent(doc, "", "  ")
}

func Decode(b []byte) (*domain.Hotel, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	rooms := make([]domain.RoomState, 0, len(doc.Rooms))
	for _, r := range doc.Rooms {
		for _, d := range r.Dates {
			if d.IsZero() {
				return nil, fmt.Errorf("%w in room %d", ErrMissingDate, r.Number)
			}
		}
		rooms = append(rooms, domain.RoomState{Number: r.Number, Beds: r.Beds, Dates: r.Dates})
	}
	return domain.Restore(doc.Name, doc.Address, rooms), nil
}
