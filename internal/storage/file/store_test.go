package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hotels/internal/domain"
	"hotels/internal/storage/file"
)

func TestStore_LoadMissing(t *testing.T) {
	st := file.New(filepath.Join(t.TempDir(), "missing.json"))
	_, err := st.Load(context.Background())
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotel.json")
	st := file.New(path)
	ctx := context.Background()

	h := domain.New("Grange", "1 farm lane")
	h.AddRoom(1, 2)
	start, _ := domain.ParseDate("2018-12-02")
	if _, err := h.Book(start, 4, 2); err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := st.Save(ctx, h); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r, err := got.Room(1)
	if err != nil {
		t.Fatalf("room: %v", err)
	}
	if got.Name != "Grange" || len(r.Dates()) != 5 {
		t.Fatalf("unexpected hotel: %+v dates=%v", got, r.Dates())
	}

	// overwrite and make sure no temp files are left behind
	h.Name = "Grange II"
	if err := st.Save(ctx, h); err != nil {
		t.Fatalf("second save: %v", err)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(ents) != 1 || ents[0].Name() != "hotel.json" {
		t.Fatalf("unexpected dir contents: %v", ents)
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := file.New(path).Load(context.Background())
	if err == nil || errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestStore_SaveKeepsMode(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	h := domain.NewDefault()

	fresh := filepath.Join(dir, "fresh.json")
	if err := file.New(fresh).Save(ctx, h); err != nil {
		t.Fatalf("save: %v", err)
	}
	fi, err := os.Stat(fresh)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o644 {
		t.Fatalf("expected 0644 for a new snapshot, got %v", fi.Mode().Perm())
	}

	existing := filepath.Join(dir, "existing.json")
	if err := os.WriteFile(existing, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chmod(existing, 0o640); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := file.New(existing).Save(ctx, h); err != nil {
		t.Fatalf("save: %v", err)
	}
	fi, err = os.Stat(existing)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o640 {
		t.Fatalf("expected 0640 kept, got %v", fi.Mode().Perm())
	}
}
