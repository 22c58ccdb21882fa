// Package store caches business registry snapshots locally so company
// lookups do not refetch the full feed on every run.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/nordlink/regsync/internal/model"
)

// ErrNotFound is returned when no cached snapshot exists for a registry
// code. Callers distinguish it from transport failures with eris.Is.
var ErrNotFound = eris.New("store: company not found")

// Store defines the persistence interface for the registry snapshot cache.
type Store interface {
	// Companies
	UpsertCompanies(ctx context.Context, companies []model.Company) (int64, error)
	GetCompany(ctx context.Context, regcode string) (*model.Company, error)
	CompanyCount(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error

	// Feed metadata
	LoadedAt(ctx context.Context) (time.Time, error)
	SetLoadedAt(ctx context.Context, t time.Time) error
	ETag(ctx context.Context) (string, error)
	SetETag(ctx context.Context, etag string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const (
	loadedAtKey = "feed_loaded_at"
	etagKey     = "feed_etag"
)
