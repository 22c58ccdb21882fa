package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nordlink/regsync/internal/fetcher"
	"github.com/nordlink/regsync/internal/register"
	"github.com/nordlink/regsync/internal/staff"
	"github.com/nordlink/regsync/internal/store"
	companysync "github.com/nordlink/regsync/internal/sync"
	"github.com/nordlink/regsync/internal/website"
	"github.com/nordlink/regsync/internal/workspace"
	"github.com/nordlink/regsync/pkg/google"
	"github.com/nordlink/regsync/pkg/notion"
)

// syncEnv holds the initialized store, clients, and syncer needed by the
// sync/autofill/staff/serve commands.
type syncEnv struct {
	Store     store.Store
	Notion    notion.Client
	Companies *workspace.CompanyStore
	Registry  *register.Repo
	Syncer    *companysync.Syncer
}

// Close releases resources held by the environment.
func (se *syncEnv) Close() {
	if se.Store != nil {
		_ = se.Store.Close()
	}
}

// initSyncEnv sets up the snapshot store, the registry feed loader, the
// Notion company store, and the syncer. Callers should defer env.Close().
func initSyncEnv(ctx context.Context) (*syncEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		RateLimiters: fetcher.DefaultRateLimiters(),
	})
	loader := register.NewLoader(f, st)
	ttl := time.Duration(cfg.Registry.CacheTTLHours) * time.Hour
	repo := register.NewRepo(st, loader, cfg.Registry.JSONURL, ttl)

	notionClient := notion.NewClient(cfg.Notion.Token)
	companies := workspace.NewCompanyStore(notionClient, cfg.Notion.CompanyDB)

	// Website discovery is optional. Without search credentials the sync
	// leaves the website placeholder in place.
	var websites companysync.WebsiteResolver
	if cfg.SearchEnabled() {
		websites = website.New(google.NewClient(cfg.Google.Key, cfg.Google.CX))
		zap.L().Info("website discovery enabled")
	} else {
		zap.L().Debug("REGSYNC_GOOGLE_KEY or REGSYNC_GOOGLE_CX not set, website discovery disabled")
	}

	return &syncEnv{
		Store:     st,
		Notion:    notionClient,
		Companies: companies,
		Registry:  repo,
		Syncer:    companysync.NewSyncer(repo, companies, websites),
	}, nil
}

// initStaff builds the staff service on top of an initialized environment.
func initStaff(env *syncEnv) (*staff.Service, error) {
	if err := cfg.ValidateStaff(); err != nil {
		return nil, err
	}
	contacts := workspace.NewContactStore(env.Notion, cfg.Notion.ContactsDB)

	var opts []staff.Option
	if cfg.Staff.StampRoles {
		opts = append(opts, staff.WithRoleStamp(func(role string) string {
			return role + " (" + time.Now().Format("2006-01") + ")"
		}))
	}
	return staff.New(contacts, opts...), nil
}
