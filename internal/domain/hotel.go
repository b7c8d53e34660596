package domain

import "sort"

// DefaultHotelName is used when no snapshot exists yet.
const DefaultHotelName = "New Hotel"

type Room struct {
	number int
	beds   int
	dates  map[Date]struct{}
}

func newRoom(number, beds int) *Room {
	return &Room{number: number, beds: beds, dates: make(map[Date]struct{})}
}

func (r *Room) Number() int { return r.number }
func (r *Room) Beds() int   { return r.beds }

func (r *Room) Occupied(d Date) bool {
	_, ok := r.dates[d]
	return ok
}

// Dates returns the occupied dates in ascending order.
func (r *Room) Dates() []Date {
	out := make([]Date, 0, len(r.dates))
	for d := range r.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// RoomState is the plain-data form of a Room used to rebuild a hotel from storage.
type RoomState struct {
	Number int
	Beds   int
	Dates  []Date
}

func (r *Room) State() RoomState {
	return RoomState{Number: r.number, Beds: r.beds, Dates: r.Dates()}
}

type Hotel struct {
	Name    string
	Address string
	rooms   []*Room
}

func New(name, address string) *Hotel {
	return &Hotel{Name: name, Address: address}
}

func NewDefault() *Hotel { return New(DefaultHotelName, "") }

// Restore rebuilds a hotel from stored state, keeping room order.
func Restore(name, address string, rooms []RoomState) *Hotel {
	h := New(name, address)
	for _, rs := range rooms {
		r := newRoom(rs.Number, rs.Beds)
		for _, d := range rs.Dates {
			r.dates[d] = struct{}{}
		}
		h.rooms = append(h.rooms, r)
	}
	return h
}

// Rooms returns the rooms in the order they were added.
func (h *Hotel) Rooms() []*Room {
	out := make([]*Room, len(h.rooms))
	copy(out, h.rooms)
	return out
}

// AddRoom appends a room. Numbers are not required to be unique.
func (h *Hotel) AddRoom(number, beds int) {
	h.rooms = append(h.rooms, newRoom(number, beds))
}

// Room returns the first room added with the given number.
func (h *Hotel) Room(number int) (*Room, error) {
	for _, r := range h.rooms {
		if r.number == number {
			return r, nil
		}
	}
	return nil, &RoomNotFoundError{Number: number}
}

// Book reserves the first room with exactly beds beds that is free on start,
// occupying start through start+duration inclusive. Only the start date is
// checked against existing bookings. On ErrNoFreeRoom nothing is changed.
func (h *Hotel) Book(start Date, duration, beds int) (*Room, error) {
	for _, r := range h.rooms {
		if r.beds != beds || r.Occupied(start) {
			continue
		}
		for day := 0; day <= duration; day++ {
			r.dates[start.AddDays(day)] = struct{}{}
		}
		return r, nil
	}
	return nil, ErrNoFreeRoom
}
