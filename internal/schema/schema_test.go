package schema

import (
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEmpty(t *testing.T) {
	assert.True(t, Value{Kind: KindRichText}.Empty())
	assert.True(t, Value{Kind: KindNumber}.Empty())
	assert.True(t, Value{Kind: KindRelation}.Empty())

	assert.False(t, Text(KindEmail, "info@x.ee").Empty())
	assert.False(t, Number(0).Empty())
	assert.False(t, Relation("page-1").Empty())

	// Placeholder sentinels are content, not emptiness.
	assert.False(t, Text(KindEmail, PlaceholderEmail).Empty())
}

func TestCompanySchemaPlaceholders(t *testing.T) {
	s := Company()

	assert.Equal(t, PlaceholderEmail, s.Placeholder(CompanyEmail))
	assert.Equal(t, PlaceholderWebsite, s.Placeholder(CompanyWebsite))
	assert.Empty(t, s.Placeholder(CompanyAddress))

	assert.True(t, s.IsPlaceholder(CompanyEmail, Text(KindEmail, PlaceholderEmail)))
	assert.False(t, s.IsPlaceholder(CompanyEmail, Text(KindEmail, "info@x.ee")))
	// Fields without a sentinel never report placeholder, even for "".
	assert.False(t, s.IsPlaceholder(CompanyAddress, Text(KindRichText, "")))
}

func TestCompanySchemaConditionalSets(t *testing.T) {
	s := Company()

	for _, name := range []string{CompanyEmail, CompanyPhone, CompanyWebsite, CompanyLinkedIn} {
		assert.True(t, s.Conditional(name), name)
	}
	for _, name := range []string{CompanyName, CompanyRegcode, CompanyAddress, CompanyCounty, CompanyActivity, CompanySection} {
		assert.False(t, s.Conditional(name), name)
	}
}

func TestToProperties(t *testing.T) {
	s := Company()
	fs := FieldSet{
		CompanyName:    Text(KindTitle, "Näide OÜ"),
		CompanyRegcode: Number(11043099),
		CompanyCounty:  Text(KindMultiSelect, "Tartu maakond"),
		CompanyEmail:   Text(KindEmail, PlaceholderEmail),
		CompanySection: Text(KindMultiSelect, "69-75: Kutse-, teadus"),
	}

	props := s.ToProperties(fs)
	require.Len(t, props, 5)

	title, ok := props[CompanyName].(notionapi.TitleProperty)
	require.True(t, ok)
	assert.Equal(t, "Näide OÜ", title.Title[0].Text.Content)

	num, ok := props[CompanyRegcode].(notionapi.NumberProperty)
	require.True(t, ok)
	assert.Equal(t, float64(11043099), num.Number)

	email, ok := props[CompanyEmail].(notionapi.EmailProperty)
	require.True(t, ok)
	assert.Equal(t, PlaceholderEmail, email.Email)

	// Option names must have commas sanitized.
	section, ok := props[CompanySection].(notionapi.MultiSelectProperty)
	require.True(t, ok)
	assert.Equal(t, "69-75: Kutse-; teadus", section.MultiSelect[0].Name)

	// Absent fields are omitted, not written empty.
	_, ok = props[CompanyAddress]
	assert.False(t, ok)
}

func TestToPropertiesClearsMultiSelect(t *testing.T) {
	s := Company()
	props := s.ToProperties(FieldSet{CompanyCounty: Text(KindMultiSelect, "")})

	county, ok := props[CompanyCounty].(notionapi.MultiSelectProperty)
	require.True(t, ok)
	assert.Empty(t, county.MultiSelect)
}

func TestFromProperties(t *testing.T) {
	s := Company()
	props := notionapi.Properties{
		CompanyName: &notionapi.TitleProperty{
			Title: []notionapi.RichText{{PlainText: "Näide OÜ"}},
		},
		CompanyRegcode: &notionapi.NumberProperty{Number: 11043099},
		CompanyEmail:   &notionapi.EmailProperty{Email: "info@x.ee"},
		CompanyWebsite: &notionapi.URLProperty{URL: ""},
		CompanyCounty: &notionapi.MultiSelectProperty{
			MultiSelect: []notionapi.Option{{Name: "Tartu maakond"}},
		},
	}

	fs := s.FromProperties(props)

	assert.Equal(t, "Näide OÜ", fs[CompanyName].Text)
	assert.Equal(t, float64(11043099), fs[CompanyRegcode].Number)
	assert.Equal(t, "info@x.ee", fs[CompanyEmail].Text)
	assert.Equal(t, "Tartu maakond", fs[CompanyCounty].Text)

	// Empty URL parses as absent.
	_, ok := fs[CompanyWebsite]
	assert.False(t, ok)
}

func TestContactSchemaRoundTrip(t *testing.T) {
	s := Contact()
	fs := FieldSet{
		ContactRole:    Text(KindTitle, "CEO"),
		ContactPerson:  Text(KindRichText, "Alice Allikas"),
		ContactCompany: Relation("org-page-1"),
		ContactStatus:  Text(KindSelect, "Active"),
	}

	props := s.ToProperties(fs)

	rel, ok := props[ContactCompany].(notionapi.RelationProperty)
	require.True(t, ok)
	assert.Equal(t, notionapi.PageID("org-page-1"), rel.Relation[0].ID)

	sel, ok := props[ContactStatus].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "Active", sel.Select.Name)
}
