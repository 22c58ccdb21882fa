package staff

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/schema"
)

// ContactStore is the slice of the workspace contact database the service
// needs. internal/workspace.ContactStore satisfies it.
type ContactStore interface {
	ListByOrg(ctx context.Context, orgPageID string) ([]model.Contact, error)
	Create(ctx context.Context, c model.Contact) (string, error)
	Update(ctx context.Context, contactID string, fields schema.FieldSet) error
	MarkSuperseded(ctx context.Context, contactID string) error
}

// Service applies resolved staff actions for one organization at a time.
type Service struct {
	contacts ContactStore

	// stampRoles appends the current date to the role of newly created
	// contacts. Off unless explicitly enabled: a stamped role text breaks
	// role matching on the next run, so the stamp must be applied to a
	// display field rather than the matched role. The stamp is produced by
	// roleStamp at creation time.
	stampRoles bool
	roleStamp  func(role string) string
}

// Option configures a Service.
type Option func(*Service)

// WithRoleStamp enables decorating the role text of created contacts.
func WithRoleStamp(stamp func(role string) string) Option {
	return func(s *Service) {
		s.stampRoles = true
		s.roleStamp = stamp
	}
}

func New(contacts ContactStore, opts ...Option) *Service {
	s := &Service{contacts: contacts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply resolves and applies every incoming person against the contact set
// of one organization. The contact set is fetched once up front; actions
// from earlier items are reflected in the in-memory set so that two
// incoming people with the same role resolve consistently within one run.
//
// A failure on one person is recorded and the batch continues. The returned
// report is always usable; the error is non-nil only when listing the
// existing contacts failed and nothing could be applied.
func (s *Service) Apply(ctx context.Context, orgPageID string, incoming []model.Person) (*model.StaffReport, error) {
	existing, err := s.contacts.ListByOrg(ctx, orgPageID)
	if err != nil {
		return nil, eris.Wrapf(err, "listing contacts for org %s", orgPageID)
	}

	report := &model.StaffReport{}
	for _, p := range incoming {
		if p.Name == "" || p.Role == "" {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("entry %q/%q: name and role are required", p.Name, p.Role))
			continue
		}

		action := Resolve(p, existing)
		if err := s.apply(ctx, orgPageID, action, &existing, report); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s (%s): %v", p.Name, p.Role, err))
		}
	}

	zap.L().Info("staff batch applied",
		zap.String("org", orgPageID),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("superseded", report.Superseded),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (s *Service) apply(ctx context.Context, orgPageID string, action Action, existing *[]model.Contact, report *model.StaffReport) error {
	switch action.Kind {
	case ActionNone:
		report.Skipped++
		return nil

	case ActionUpdate:
		if err := s.contacts.Update(ctx, action.ContactID, action.Fields); err != nil {
			return eris.Wrap(err, "updating contact")
		}
		patch(existing, action.ContactID, action.Person)
		report.Updated++
		return nil

	case ActionSupersede:
		if err := s.contacts.MarkSuperseded(ctx, action.ContactID); err != nil {
			return eris.Wrap(err, "superseding contact")
		}
		supersede(existing, action.ContactID)
		if err := s.create(ctx, orgPageID, action.Person, existing); err != nil {
			return err
		}
		report.Superseded++
		report.Created++
		return nil

	case ActionCreate:
		if err := s.create(ctx, orgPageID, action.Person, existing); err != nil {
			return err
		}
		report.Created++
		return nil
	}
	return eris.Errorf("unknown action kind %q", action.Kind)
}

func (s *Service) create(ctx context.Context, orgPageID string, p model.Person, existing *[]model.Contact) error {
	role := p.Role
	if s.stampRoles && s.roleStamp != nil {
		role = s.roleStamp(role)
	}
	c := model.Contact{
		Name:   p.Name,
		Role:   role,
		Email:  p.Email,
		Phone:  p.Phone,
		Status: model.ContactActive,
		OrgID:  orgPageID,
	}
	id, err := s.contacts.Create(ctx, c)
	if err != nil {
		return eris.Wrap(err, "creating contact")
	}
	c.ID = id
	*existing = append(*existing, c)
	return nil
}

// patch mirrors an applied update into the in-memory contact set.
func patch(existing *[]model.Contact, contactID string, p model.Person) {
	for i := range *existing {
		if (*existing)[i].ID != contactID {
			continue
		}
		if p.Email != "" {
			(*existing)[i].Email = p.Email
		}
		if p.Phone != "" {
			(*existing)[i].Phone = p.Phone
		}
		return
	}
}

func supersede(existing *[]model.Contact, contactID string) {
	for i := range *existing {
		if (*existing)[i].ID == contactID {
			(*existing)[i].Status = model.ContactSuperseded
			return
		}
	}
}
