package workspace

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/schema"
	"github.com/nordlink/regsync/pkg/notion"
)

// ContactStore reads and writes staff contact pages.
type ContactStore struct {
	client notion.Client
	dbID   string
	sch    *schema.Schema
}

// NewContactStore creates a store over the given contacts database.
func NewContactStore(client notion.Client, dbID string) *ContactStore {
	return &ContactStore{client: client, dbID: dbID, sch: schema.Contact()}
}

// ListByOrg returns every contact linked to the given company page,
// superseded ones included. Archived pages are skipped.
func (s *ContactStore) ListByOrg(ctx context.Context, orgPageID string) ([]model.Contact, error) {
	filter := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: schema.ContactCompany,
			Relation: &notionapi.RelationFilterCondition{Contains: orgPageID},
		},
	}
	pages, err := notion.QueryAll(ctx, s.client, s.dbID, filter)
	if err != nil {
		return nil, eris.Wrap(err, "workspace: list contacts")
	}

	var contacts []model.Contact
	for i := range pages {
		if pages[i].Archived {
			continue
		}
		contacts = append(contacts, s.parseContact(&pages[i]))
	}
	return contacts, nil
}

// Create adds a contact page and returns its ID. New contacts are always
// created active with the plain role text.
func (s *ContactStore) Create(ctx context.Context, c model.Contact) (string, error) {
	fs := schema.FieldSet{
		schema.ContactRole:   schema.Text(schema.KindTitle, c.Role),
		schema.ContactPerson: schema.Text(schema.KindRichText, c.Name),
		schema.ContactStatus: schema.Text(schema.KindSelect, string(model.ContactActive)),
	}
	if c.Email != "" {
		fs[schema.ContactEmail] = schema.Text(schema.KindEmail, c.Email)
	}
	if c.Phone != "" {
		fs[schema.ContactPhone] = schema.Text(schema.KindPhone, c.Phone)
	}
	if c.OrgID != "" {
		fs[schema.ContactCompany] = schema.Relation(c.OrgID)
	}

	page, err := s.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.dbID),
		},
		Properties: s.sch.ToProperties(fs),
	})
	if err != nil {
		return "", eris.Wrapf(err, "workspace: create contact %s (%s)", c.Name, c.Role)
	}
	return string(page.ID), nil
}

// Update writes the given fields to an existing contact page.
func (s *ContactStore) Update(ctx context.Context, contactID string, fields schema.FieldSet) error {
	_, err := s.client.UpdatePage(ctx, contactID, &notionapi.PageUpdateRequest{
		Properties: s.sch.ToProperties(fields),
	})
	return eris.Wrapf(err, "workspace: update contact %s", contactID)
}

// MarkSuperseded flips a contact's status to superseded. The contact's
// identifying fields are untouched: supersession is a status change, not a
// delete, and the record stays queryable.
func (s *ContactStore) MarkSuperseded(ctx context.Context, contactID string) error {
	return s.Update(ctx, contactID, schema.FieldSet{
		schema.ContactStatus: schema.Text(schema.KindSelect, string(model.ContactSuperseded)),
	})
}

func (s *ContactStore) parseContact(p *notionapi.Page) model.Contact {
	fs := s.sch.FromProperties(p.Properties)

	c := model.Contact{
		ID:     string(p.ID),
		Role:   fs[schema.ContactRole].Text,
		Name:   fs[schema.ContactPerson].Text,
		Email:  fs[schema.ContactEmail].Text,
		Phone:  fs[schema.ContactPhone].Text,
		Status: model.ContactActive,
	}
	if rel := fs[schema.ContactCompany].Relation; len(rel) > 0 {
		c.OrgID = rel[0]
	}
	if fs[schema.ContactStatus].Text == string(model.ContactSuperseded) {
		c.Status = model.ContactSuperseded
	}
	return c
}
