package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"hotels/internal/app"
	"hotels/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	hotel   *domain.Hotel
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStore) Load(ctx context.Context) (*domain.Hotel, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.hotel == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return f.hotel, nil
}

func (f *fakeStore) Save(ctx context.Context, h *domain.Hotel) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.hotel = h
	f.saves++
	return nil
}

func (f *fakeStore) Close() error { return nil }

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func seeded() *fakeStore {
	h := domain.New("california", "22 bear street")
	h.AddRoom(1, 2)
	h.AddRoom(2, 4)
	return &fakeStore{hotel: h}
}

// ---- tests ----

func TestLoadOrCreate_Default(t *testing.T) {
	svc := app.NewService(&fakeStore{}, zerolog.Nop())
	h, err := svc.LoadOrCreate(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != domain.DefaultHotelName || h.Address != "" || len(h.Rooms()) != 0 {
		t.Fatalf("unexpected default hotel: %+v", h)
	}
}

func TestLoadOrCreate_PropagatesErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := app.NewService(&fakeStore{loadErr: boom}, zerolog.Nop())
	if _, err := svc.LoadOrCreate(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestUpdate_OnlyProvidedFields(t *testing.T) {
	st := seeded()
	svc := app.NewService(st, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Update(ctx, "La Grange", ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	if st.hotel.Name != "La Grange" || st.hotel.Address != "22 bear street" {
		t.Fatalf("unexpected hotel: %+v", st.hotel)
	}
	if err := svc.Update(ctx, "", "1 river road"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if st.hotel.Name != "La Grange" || st.hotel.Address != "1 river road" {
		t.Fatalf("unexpected hotel: %+v", st.hotel)
	}
	if st.saves != 2 {
		t.Fatalf("expected 2 saves, got %d", st.saves)
	}
}

func TestDisplay(t *testing.T) {
	svc := app.NewService(seeded(), zerolog.Nop())
	var buf bytes.Buffer
	if err := svc.Display(context.Background(), &buf); err != nil {
		t.Fatalf("err: %v", err)
	}
	want := "california\n22 bear street\n\n" +
		"|  No  |  BEDS  |\n" +
		"| 0001 |      2 |\n" +
		"| 0002 |      4 |\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestAddRoom_Persists(t *testing.T) {
	st := &fakeStore{}
	svc := app.NewService(st, zerolog.Nop())
	ctx := context.Background()

	if err := svc.AddRoom(ctx, app.AddRoomRequest{Number: 101, Beds: 3}); err != nil {
		t.Fatalf("err: %v", err)
	}
	r, err := st.hotel.Room(101)
	if err != nil || r.Beds() != 3 {
		t.Fatalf("room not saved: %v %v", r, err)
	}

	// zero values and duplicates are ordinary rooms
	if err := svc.AddRoom(ctx, app.AddRoomRequest{Number: 0, Beds: 0}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := svc.AddRoom(ctx, app.AddRoomRequest{Number: 101, Beds: 1}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if st.saves != 3 || len(st.hotel.Rooms()) != 3 {
		t.Fatalf("expected 3 saves and 3 rooms, got saves=%d rooms=%d", st.saves, len(st.hotel.Rooms()))
	}
}

func TestBook_Scenarios(t *testing.T) {
	st := seeded()
	svc := app.NewService(st, zerolog.Nop())
	ctx := context.Background()

	res, err := svc.Book(ctx, app.BookRequest{Start: date(t, "2018-10-03"), Duration: 3, Beds: 2})
	if err != nil || !res.Booked || res.Room != 1 {
		t.Fatalf("scenario A: %+v %v", res, err)
	}

	res, err = svc.Book(ctx, app.BookRequest{Start: date(t, "2018-10-04"), Duration: 3, Beds: 2})
	if err != nil || res.Booked {
		t.Fatalf("scenario B should report no free room: %+v %v", res, err)
	}

	res, err = svc.Book(ctx, app.BookRequest{Start: date(t, "2018-10-03"), Duration: 1, Beds: 4})
	if err != nil || !res.Booked || res.Room != 2 {
		t.Fatalf("scenario C: %+v %v", res, err)
	}

	// saved after every attempt, including the failed one
	if st.saves != 3 {
		t.Fatalf("expected 3 saves, got %d", st.saves)
	}
}

func TestBook_UnknownCapacityPersists(t *testing.T) {
	st := seeded()
	svc := app.NewService(st, zerolog.Nop())

	res, err := svc.Book(context.Background(), app.BookRequest{Start: date(t, "2018-10-03"), Duration: 1, Beds: 0})
	if err != nil || res.Booked {
		t.Fatalf("expected no free room, got %+v %v", res, err)
	}
	if st.saves != 1 {
		t.Fatalf("expected the hotel saved after a failed booking, saves=%d", st.saves)
	}
}

func TestBook_InvalidInputSkipsModel(t *testing.T) {
	st := seeded()
	svc := app.NewService(st, zerolog.Nop())

	_, err := svc.Book(context.Background(), app.BookRequest{Start: date(t, "2018-10-03"), Duration: -1, Beds: 2})
	var verr *app.ValidationError
	if !errors.As(err, &verr) || verr.Fields["Duration"] == "" {
		t.Fatalf("expected Duration validation error, got %v", err)
	}
	if st.saves != 0 {
		t.Fatalf("invalid request must not save")
	}
}

func TestBook_SaveErrorSurfaces(t *testing.T) {
	st := seeded()
	st.saveErr = errors.New("read-only")
	svc := app.NewService(st, zerolog.Nop())

	_, err := svc.Book(context.Background(), app.BookRequest{Start: date(t, "2018-10-03"), Duration: 0, Beds: 2})
	if !errors.Is(err, st.saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
}
