package workspace

import (
	"context"
	"fmt"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/schema"
)

// fakeClient returns canned responses and records write requests.
type fakeClient struct {
	queryResp  *notionapi.DatabaseQueryResponse
	queryErr   error
	getResp    *notionapi.Page
	getErr     error
	createReq  *notionapi.PageCreateRequest
	createResp *notionapi.Page
	createErr  error
	updateID   string
	updateReq  *notionapi.PageUpdateRequest
	updateErr  error
}

func (f *fakeClient) QueryDatabase(_ context.Context, _ string, _ *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return f.queryResp, f.queryErr
}

func (f *fakeClient) GetPage(_ context.Context, _ string) (*notionapi.Page, error) {
	return f.getResp, f.getErr
}

func (f *fakeClient) CreatePage(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	f.createReq = req
	return f.createResp, f.createErr
}

func (f *fakeClient) UpdatePage(_ context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	f.updateID = pageID
	f.updateReq = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &notionapi.Page{ID: notionapi.ObjectID(pageID)}, nil
}

func (f *fakeClient) GetDatabase(_ context.Context, _ string) (*notionapi.Database, error) {
	return nil, fmt.Errorf("not implemented")
}

func companyPage(id string, regcode float64, archived bool) notionapi.Page {
	return notionapi.Page{
		ID:       notionapi.ObjectID(id),
		Archived: archived,
		Properties: notionapi.Properties{
			schema.CompanyName: &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: "Näidis OÜ"}},
			},
			schema.CompanyRegcode: &notionapi.NumberProperty{Number: regcode},
			schema.CompanyEmail:   &notionapi.EmailProperty{Email: "info@naidis.ee"},
		},
	}
}

func TestFindByRegcode(t *testing.T) {
	client := &fakeClient{
		queryResp: &notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{companyPage("page-1", 11043099, false)},
		},
	}
	store := NewCompanyStore(client, "db-1")

	page, err := store.FindByRegcode(context.Background(), 11043099)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "page-1", page.ID)
	assert.Equal(t, "11043099", page.Regcode)
	assert.Equal(t, "Näidis OÜ", page.Fields[schema.CompanyName].Text)
	assert.Equal(t, "info@naidis.ee", page.Fields[schema.CompanyEmail].Text)
}

func TestFindByRegcodeNotFound(t *testing.T) {
	client := &fakeClient{queryResp: &notionapi.DatabaseQueryResponse{}}
	store := NewCompanyStore(client, "db-1")

	page, err := store.FindByRegcode(context.Background(), 99999999)
	require.NoError(t, err)
	assert.Nil(t, page)
}

func TestFindByRegcodeSkipsArchived(t *testing.T) {
	client := &fakeClient{
		queryResp: &notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{
				companyPage("page-old", 11043099, true),
				companyPage("page-new", 11043099, false),
			},
		},
	}
	store := NewCompanyStore(client, "db-1")

	page, err := store.FindByRegcode(context.Background(), 11043099)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "page-new", page.ID)
}

func TestCompanyCreateTargetsDatabase(t *testing.T) {
	client := &fakeClient{createResp: &notionapi.Page{ID: "page-9"}}
	store := NewCompanyStore(client, "db-1")

	id, err := store.Create(context.Background(), schema.FieldSet{
		schema.CompanyName: schema.Text(schema.KindTitle, "Uus OÜ"),
	})
	require.NoError(t, err)
	assert.Equal(t, "page-9", id)
	require.NotNil(t, client.createReq)
	assert.Equal(t, notionapi.DatabaseID("db-1"), client.createReq.Parent.DatabaseID)
	assert.Contains(t, client.createReq.Properties, schema.CompanyName)
}

func TestSetStatusTruncatesLongText(t *testing.T) {
	client := &fakeClient{}
	store := NewCompanyStore(client, "db-1")

	long := make([]byte, 3000)
	for i := range long {
		long[i] = 'a'
	}
	require.NoError(t, store.SetStatus(context.Background(), "page-1", string(long)))

	prop, ok := client.updateReq.Properties[schema.CompanyStatusField].(notionapi.RichTextProperty)
	require.True(t, ok)
	require.Len(t, prop.RichText, 1)
	assert.Len(t, prop.RichText[0].Text.Content, 1900)
}

func TestExtractRegcode(t *testing.T) {
	tests := []struct {
		name string
		prop notionapi.Property
		want string
		ok   bool
	}{
		{"number", &notionapi.NumberProperty{Number: 11043099}, "11043099", true},
		{"zero number", &notionapi.NumberProperty{Number: 0}, "", false},
		{"title with noise", &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "reg 11043099"}}}, "11043099", true},
		{"rich text", &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "11043099"}}}, "11043099", true},
		{"no digits", &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "puudub"}}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractRegcode(notionapi.Properties{schema.CompanyRegcode: tt.prop})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ExtractRegcode(notionapi.Properties{})
	assert.False(t, ok)
}

func contactPage(id, role, person, status string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			schema.ContactRole: &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: role}},
			},
			schema.ContactPerson: &notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{PlainText: person}},
			},
			schema.ContactEmail:  &notionapi.EmailProperty{Email: "x@naidis.ee"},
			schema.ContactStatus: &notionapi.SelectProperty{Select: notionapi.Option{Name: status}},
			schema.ContactCompany: &notionapi.RelationProperty{
				Relation: []notionapi.Relation{{ID: "org-1"}},
			},
		},
	}
}

func TestListByOrg(t *testing.T) {
	client := &fakeClient{
		queryResp: &notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{
				contactPage("c1", "CEO", "Alice Kask", "Active"),
				contactPage("c2", "CEO", "Endine Juht", "Superseded"),
			},
		},
	}
	store := NewContactStore(client, "db-2")

	contacts, err := store.ListByOrg(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	assert.Equal(t, "Alice Kask", contacts[0].Name)
	assert.Equal(t, "CEO", contacts[0].Role)
	assert.Equal(t, model.ContactActive, contacts[0].Status)
	assert.Equal(t, "org-1", contacts[0].OrgID)
	assert.Equal(t, model.ContactSuperseded, contacts[1].Status)
}

func TestContactCreateWritesActiveStatus(t *testing.T) {
	client := &fakeClient{createResp: &notionapi.Page{ID: "c9"}}
	store := NewContactStore(client, "db-2")

	id, err := store.Create(context.Background(), model.Contact{
		Name:  "Bob Sepp",
		Role:  "CEO",
		Email: "bob@naidis.ee",
		OrgID: "org-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", id)

	props := client.createReq.Properties
	sel, ok := props[schema.ContactStatus].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "Active", sel.Select.Name)

	rel, ok := props[schema.ContactCompany].(notionapi.RelationProperty)
	require.True(t, ok)
	require.Len(t, rel.Relation, 1)
	assert.Equal(t, notionapi.PageID("org-1"), rel.Relation[0].ID)
}

func TestMarkSuperseded(t *testing.T) {
	client := &fakeClient{}
	store := NewContactStore(client, "db-2")

	require.NoError(t, store.MarkSuperseded(context.Background(), "c1"))
	assert.Equal(t, "c1", client.updateID)

	sel, ok := client.updateReq.Properties[schema.ContactStatus].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "Superseded", sel.Select.Name)
	assert.Len(t, client.updateReq.Properties, 1, "only the status field is touched")
}
