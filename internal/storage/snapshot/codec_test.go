package snapshot_test

import (
	"errors"
	"strings"
	"testing"

	"hotels/internal/domain"
	"hotels/internal/storage/snapshot"
)

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	h := domain.New("Napoleon", "Col Bayard road")
	h.AddRoom(4, 2)
	h.AddRoom(1, 4)
	h.AddRoom(4, 1)
	if _, err := h.Book(date(t, "2018-10-03"), 3, 2); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := h.Book(date(t, "2018-12-30"), 2, 1); err != nil {
		t.Fatalf("book: %v", err)
	}

	b, err := snapshot.Encode(h)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := snapshot.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Name != h.Name || got.Address != h.Address {
		t.Fatalf("metadata mismatch: %+v", got)
	}
	want, have := h.Rooms(), got.Rooms()
	if len(want) != len(have) {
		t.Fatalf("rooms: got %d want %d", len(have), len(want))
	}
	for i := range want {
		ws, hs := want[i].State(), have[i].State()
		if ws.Number != hs.Number || ws.Beds != hs.Beds || len(ws.Dates) != len(hs.Dates) {
			t.Fatalf("room %d: got %+v want %+v", i, hs, ws)
		}
		for j := range ws.Dates {
			if ws.Dates[j] != hs.Dates[j] {
				t.Fatalf("room %d dates: got %v want %v", i, hs.Dates, ws.Dates)
			}
		}
	}
}

func TestEncode_Document(t *testing.T) {
	h := domain.NewDefault()
	b, err := snapshot.Encode(h)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := string(b)
	for _, want := range []string{`"version": 1`, `"name": "New Hotel"`, `"rooms": []`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed":  `{"version":`,
		"no version": `{"name":"x","rooms":[]}`,
		"future":     `{"version":2,"name":"x","rooms":[]}`,
		"bad date":   `{"version":1,"name":"x","rooms":[{"number":1,"beds":2,"dates":["2018-02-31x"]}]}`,
	}
	for name, in := range cases {
		if _, err := snapshot.Decode([]byte(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := snapshot.Decode([]byte(`{"version":2}`))
	if !errors.Is(err, snapshot.ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}

	_, err = snapshot.Decode([]byte(`{"version":1,"name":"x","rooms":[{"number":7,"beds":2,"dates":["2018-10-03",null]}]}`))
	if !errors.Is(err, snapshot.ErrMissingDate) || !strings.Contains(err.Error(), "room 7") {
		t.Fatalf("expected ErrMissingDate for a null date, got %v", err)
	}
}
