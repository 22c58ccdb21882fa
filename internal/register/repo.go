package register

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/store"
)

// ErrNotFound is returned when the registry feed has no company under the
// given code.
var ErrNotFound = store.ErrNotFound

// Repo serves company snapshots from the cache, reloading the feed when the
// cached copy has gone stale.
type Repo struct {
	store   store.Store
	loader  *Loader
	feedURL string
	ttl     time.Duration
}

// NewRepo creates a Repo. With a zero ttl the cache never goes stale and
// reloads happen only through explicit Load runs.
func NewRepo(s store.Store, loader *Loader, feedURL string, ttl time.Duration) *Repo {
	return &Repo{store: s, loader: loader, feedURL: feedURL, ttl: ttl}
}

// Find returns the snapshot for one registry code, refreshing the feed
// first when the cache is stale. A failed refresh over a non-empty cache
// degrades to serving stale data instead of failing the lookup.
func (r *Repo) Find(ctx context.Context, regcode string) (*model.Company, error) {
	if err := r.ensureFresh(ctx); err != nil {
		return nil, err
	}
	c, err := r.store.GetCompany(ctx, regcode)
	if err != nil {
		return nil, eris.Wrapf(err, "register: find company %s", regcode)
	}
	return c, nil
}

func (r *Repo) ensureFresh(ctx context.Context) error {
	loadedAt, err := r.store.LoadedAt(ctx)
	if err != nil {
		return err
	}

	fresh := !loadedAt.IsZero() && (r.ttl <= 0 || time.Since(loadedAt) < r.ttl)
	if fresh {
		return nil
	}

	if _, err := r.loader.Load(ctx, r.feedURL); err != nil {
		count, countErr := r.store.CompanyCount(ctx)
		if countErr == nil && count > 0 {
			zap.L().Warn("feed refresh failed, serving stale cache",
				zap.Time("loaded_at", loadedAt),
				zap.Int64("companies", count),
				zap.Error(err))
			return nil
		}
		return eris.Wrap(err, "register: refresh feed")
	}
	return nil
}
