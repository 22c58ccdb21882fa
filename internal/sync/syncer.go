package sync

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/schema"
	"github.com/nordlink/regsync/internal/workspace"
)

// Registry looks up one company snapshot by its registry code.
// internal/register.Repo satisfies it.
type Registry interface {
	Find(ctx context.Context, regcode string) (*model.Company, error)
}

// CompanyStore is the slice of the workspace company database the syncer
// needs. internal/workspace.CompanyStore satisfies it.
type CompanyStore interface {
	FindByRegcode(ctx context.Context, regcode float64) (*workspace.Page, error)
	Get(ctx context.Context, pageID string) (*workspace.Page, error)
	Create(ctx context.Context, fields schema.FieldSet) (string, error)
	Update(ctx context.Context, pageID string, fields schema.FieldSet) error
	SetStatus(ctx context.Context, pageID, text string) error
}

// WebsiteResolver finds a company website by name. A (_, false) result
// means "nothing found", never a failure.
type WebsiteResolver interface {
	Resolve(ctx context.Context, orgName string) (string, bool)
}

// Syncer drives one company through the full pipeline: registry lookup,
// candidate build, optional website discovery, merge against the stored
// page, and the status side-channel write.
type Syncer struct {
	registry Registry
	store    CompanyStore
	websites WebsiteResolver // nil disables website discovery
	sch      *schema.Schema
}

func NewSyncer(registry Registry, store CompanyStore, websites WebsiteResolver) *Syncer {
	return &Syncer{
		registry: registry,
		store:    store,
		websites: websites,
		sch:      schema.Company(),
	}
}

// SyncByRegcode syncs one company identified by its registry code,
// creating the workspace page when none exists yet.
func (s *Syncer) SyncByRegcode(ctx context.Context, regcode string) (*model.SyncOutcome, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(regcode), 64)
	if err != nil {
		return nil, eris.Errorf("invalid registry code %q", regcode)
	}
	page, err := s.store.FindByRegcode(ctx, n)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, regcode, page)
}

// AutofillPage syncs the company behind an existing workspace page. The
// page must carry a readable registry code; without one there is nothing
// to look up.
func (s *Syncer) AutofillPage(ctx context.Context, pageID string) (*model.SyncOutcome, error) {
	page, err := s.store.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page.Regcode == "" {
		err := eris.Errorf("page %s has no registry code", pageID)
		s.setErrorStatus(ctx, pageID, err)
		return nil, err
	}
	return s.sync(ctx, page.Regcode, page)
}

func (s *Syncer) sync(ctx context.Context, regcode string, page *workspace.Page) (*model.SyncOutcome, error) {
	company, err := s.registry.Find(ctx, regcode)
	if err != nil {
		err = eris.Wrapf(err, "registry lookup for %s", regcode)
		if page != nil {
			s.setErrorStatus(ctx, page.ID, err)
		}
		return nil, err
	}

	fields, empty, name := Build(company, regcode)
	fields, empty = s.discoverWebsite(ctx, name, page, fields, empty)

	outcome := &model.SyncOutcome{
		Regcode:     regcode,
		CompanyName: name,
		EmptyFields: empty,
	}

	if page == nil {
		id, err := s.store.Create(ctx, fields)
		if err != nil {
			return nil, err
		}
		outcome.Action = model.SyncCreated
		outcome.PageID = id
	} else {
		merged := Merge(s.sch, page.Fields, fields)
		if err := s.store.Update(ctx, page.ID, merged); err != nil {
			s.setErrorStatus(ctx, page.ID, err)
			return nil, err
		}
		outcome.Action = model.SyncUpdated
		outcome.PageID = page.ID
	}

	// The status write is reporting, not data. A failure here must not
	// fail a sync that already landed.
	if err := s.store.SetStatus(ctx, outcome.PageID, outcome.Message()); err != nil {
		zap.L().Warn("status write failed", zap.String("page", outcome.PageID), zap.Error(err))
	}

	zap.L().Info("company synced",
		zap.String("regcode", regcode),
		zap.String("name", name),
		zap.String("action", string(outcome.Action)),
		zap.Strings("empty_fields", empty))
	return outcome, nil
}

// discoverWebsite fills the website field by search when neither the
// registry nor the stored page has a usable value. Discovery never fails a
// sync: when the search comes up empty the placeholder stays.
func (s *Syncer) discoverWebsite(ctx context.Context, name string, page *workspace.Page, fields schema.FieldSet, empty []string) (schema.FieldSet, []string) {
	if s.websites == nil || name == "" {
		return fields, empty
	}
	if !s.sch.IsPlaceholder(schema.CompanyWebsite, fields[schema.CompanyWebsite]) {
		return fields, empty
	}
	if page != nil {
		cur, ok := page.Fields[schema.CompanyWebsite]
		if ok && !cur.Empty() && !s.sch.IsPlaceholder(schema.CompanyWebsite, cur) {
			// A manually curated website wins; the merge keeps it anyway,
			// so the search call would be wasted.
			return fields, empty
		}
	}

	url, ok := s.websites.Resolve(ctx, name)
	if !ok {
		return fields, empty
	}
	fields[schema.CompanyWebsite] = schema.Text(schema.KindURL, url)
	return fields, dropLabel(empty, s.labelOf(schema.CompanyWebsite))
}

// setErrorStatus records a failed sync on the page's status field so the
// failure is visible next to the data. Best effort: the original error is
// what the caller gets either way.
func (s *Syncer) setErrorStatus(ctx context.Context, pageID string, cause error) {
	msg := cause.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if err := s.store.SetStatus(ctx, pageID, "Error: "+msg); err != nil {
		zap.L().Warn("error status write failed", zap.String("page", pageID), zap.Error(err))
	}
}

func (s *Syncer) labelOf(name string) string {
	if f, ok := s.sch.Lookup(name); ok {
		return f.Label
	}
	return name
}

func dropLabel(labels []string, label string) []string {
	out := labels[:0]
	for _, l := range labels {
		if l != label {
			out = append(out, l)
		}
	}
	return out
}
