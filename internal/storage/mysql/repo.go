package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"hotels/internal/domain"
	"hotels/internal/storage/snapshot"
)

// Repo stores one snapshot row per hotel name.
type Repo struct {
	db   *sql.DB
	name string
}

func New(db *sql.DB, name string) *Repo { return &Repo{db: db, name: name} }

// Open connects with a go-sql-driver DSN and makes sure the table exists.
func Open(ctx context.Context, dsn, name string) (*Repo, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	r := New(db, name)
	if err := r.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSnapshotsSQL); err != nil {
		return fmt.Errorf("create hotel_snapshots: %w", err)
	}
	return nil
}

func (r *Repo) Load(ctx context.Context) (*domain.Hotel, error) {
	var version int
	var body []byte
	err := r.db.QueryRowContext(ctx, getSnapshotSQL, r.name).Scan(&version, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", r.name, err)
	}
	if version != snapshot.Version {
		return nil, fmt.Errorf("%w: row %q has version %d", snapshot.ErrUnsupportedVersion, r.name, version)
	}
	return snapshot.Decode(body)
}

func (r *Repo) Save(ctx context.Context, h *domain.Hotel) error {
	b, err := snapshot.Encode(h)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, upsertSnapshotSQL, r.name, snapshot.Version, string(b)); err != nil {
		return fmt.Errorf("save snapshot %q: %w", r.name, err)
	}
	return nil
}

func (r *Repo) Close() error { return r.db.Close() }
