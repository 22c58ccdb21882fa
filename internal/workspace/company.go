// Package workspace implements the persistence collaborators over the
// Notion workspace: a company page store and a staff contact store. The
// core packages only see these stores, never the Notion API.
package workspace

import (
	"context"
	"strconv"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/nordlink/regsync/internal/schema"
	"github.com/nordlink/regsync/pkg/notion"
)

// statusMaxLen bounds the side-channel status text; the workspace rejects
// rich_text content above 2000 characters.
const statusMaxLen = 1900

// Page is one company page with its parsed managed fields. Regcode is the
// extracted registry code as a digit string, empty when the page carries
// none.
type Page struct {
	ID      string
	Regcode string
	Fields  schema.FieldSet
}

// CompanyStore reads and writes company pages in the workspace database.
type CompanyStore struct {
	client notion.Client
	dbID   string
	sch    *schema.Schema
}

// NewCompanyStore creates a store over the given company database.
func NewCompanyStore(client notion.Client, dbID string) *CompanyStore {
	return &CompanyStore{client: client, dbID: dbID, sch: schema.Company()}
}

// FindByRegcode returns the first active page whose registry code matches,
// or nil when no page exists. Transport failures are returned as errors,
// distinct from the nil not-found result.
func (s *CompanyStore) FindByRegcode(ctx context.Context, regcode float64) (*Page, error) {
	resp, err := s.client.QueryDatabase(ctx, s.dbID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: schema.CompanyRegcode,
			Number:   &notionapi.NumberFilterCondition{Equals: &regcode},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "workspace: find company by regcode")
	}
	for i := range resp.Results {
		p := &resp.Results[i]
		if p.Archived {
			continue
		}
		return s.page(p), nil
	}
	return nil, nil
}

// Get fetches one company page by its page ID.
func (s *CompanyStore) Get(ctx context.Context, pageID string) (*Page, error) {
	p, err := s.client.GetPage(ctx, pageID)
	if err != nil {
		return nil, eris.Wrap(err, "workspace: get company page")
	}
	return s.page(p), nil
}

func (s *CompanyStore) page(p *notionapi.Page) *Page {
	regcode, _ := ExtractRegcode(p.Properties)
	return &Page{ID: string(p.ID), Regcode: regcode, Fields: s.sch.FromProperties(p.Properties)}
}

// Create adds a new company page and returns its ID.
func (s *CompanyStore) Create(ctx context.Context, fields schema.FieldSet) (string, error) {
	page, err := s.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.dbID),
		},
		Properties: s.sch.ToProperties(fields),
	})
	if err != nil {
		return "", eris.Wrap(err, "workspace: create company page")
	}
	return string(page.ID), nil
}

// Update writes the given fields to an existing company page. Fields not
// present in the set are left untouched.
func (s *CompanyStore) Update(ctx context.Context, pageID string, fields schema.FieldSet) error {
	_, err := s.client.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{
		Properties: s.sch.ToProperties(fields),
	})
	return eris.Wrap(err, "workspace: update company page")
}

// SetStatus writes the side-channel run status text to a page. Pass "" to
// clear the field after a successful run.
func (s *CompanyStore) SetStatus(ctx context.Context, pageID, text string) error {
	if len(text) > statusMaxLen {
		text = text[:statusMaxLen]
	}
	_, err := s.client.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			schema.CompanyStatusField: notionapi.RichTextProperty{
				Type: notionapi.PropertyTypeRichText,
				RichText: []notionapi.RichText{
					{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: text}},
				},
			},
		},
	})
	return eris.Wrap(err, "workspace: set status")
}

// ExtractRegcode pulls the registry code off a page regardless of how the
// property is typed in the workspace (number, title, or rich_text with
// digit noise). Returns the code as a digit string.
func ExtractRegcode(props notionapi.Properties) (string, bool) {
	prop, ok := props[schema.CompanyRegcode]
	if !ok || prop == nil {
		return "", false
	}
	switch p := prop.(type) {
	case *notionapi.NumberProperty:
		if p.Number <= 0 {
			return "", false
		}
		return strconvInt(p.Number), true
	case *notionapi.TitleProperty:
		return digitString(schema.PlainText(p.Title))
	case *notionapi.RichTextProperty:
		return digitString(schema.PlainText(p.RichText))
	}
	return "", false
}

func digitString(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String(), b.Len() > 0
}

func strconvInt(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}
