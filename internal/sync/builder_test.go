package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/schema"
)

func tartuCompany() *model.Company {
	return &model.Company{
		Regcode: "11043099",
		Name:    "  Näidis OÜ  ",
		Addresses: []model.Address{
			{Full: "Tartu maakond, Tartu linn, Ülikooli tn 18, 50090"},
		},
		Comms: []model.CommItem{
			{Kind: model.CommEmail, Value: "info@naidis.ee"},
			{Kind: model.CommEmail, Value: "sales@naidis.ee"},
			{Kind: model.CommMobile, Value: "+372 5555 1234"},
		},
		Activities: []model.Activity{
			{Code: "47191", Text: "Jaemüük kaubamajades", Primary: true},
			{Code: "68201", Text: "Kinnisvara üürileandmine"},
		},
	}
}

func TestBuildFullSnapshot(t *testing.T) {
	fs, empty, name := Build(tartuCompany(), "11043099")

	assert.Equal(t, "Näidis OÜ", name)
	assert.Equal(t, "Näidis OÜ", fs[schema.CompanyName].Text)
	require.True(t, fs[schema.CompanyRegcode].HasNumber)
	assert.Equal(t, float64(11043099), fs[schema.CompanyRegcode].Number)
	assert.Equal(t, "Tartu maakond, Tartu linn, Ülikooli tn 18, 50090", fs[schema.CompanyAddress].Text)
	assert.Equal(t, "Tartu maakond", fs[schema.CompanyCounty].Text)
	assert.Equal(t, "Jaemüük kaubamajades", fs[schema.CompanyActivity].Text)
	assert.Equal(t, "45-47: Hulgi- ja jaekaubandus; mootorsõidukite ja mootorrataste remont", fs[schema.CompanySection].Text)

	// First email in feed order wins.
	assert.Equal(t, "info@naidis.ee", fs[schema.CompanyEmail].Text)
	// A mobile entry fills the phone field.
	assert.Equal(t, "+372 5555 1234", fs[schema.CompanyPhone].Text)

	// No website or LinkedIn in the feed: placeholder plus empty-field
	// label, in declared order.
	assert.Equal(t, schema.PlaceholderWebsite, fs[schema.CompanyWebsite].Text)
	assert.Equal(t, schema.PlaceholderLinkedIn, fs[schema.CompanyLinkedIn].Text)
	assert.Equal(t, []string{"Veebileht (Website)", "LinkedIn"}, empty)
}

func TestBuildEmptySnapshot(t *testing.T) {
	fs, empty, name := Build(&model.Company{Name: "Tühi OÜ"}, "10000000")

	assert.Equal(t, "Tühi OÜ", name)
	assert.Equal(t, schema.PlaceholderEmail, fs[schema.CompanyEmail].Text)
	assert.Equal(t, schema.PlaceholderPhone, fs[schema.CompanyPhone].Text)
	assert.Equal(t, schema.PlaceholderWebsite, fs[schema.CompanyWebsite].Text)
	assert.Equal(t, schema.PlaceholderLinkedIn, fs[schema.CompanyLinkedIn].Text)

	assert.Equal(t, []string{
		"Aadress (Address)",
		"Maakond (County)",
		"E-post (Email)",
		"Tel. nr (Phone No)",
		"Veebileht (Website)",
		"LinkedIn",
		"Põhitegevus (Main Activity)",
		"Tegevusvaldkond (Industry Section)",
	}, empty)
}

func TestBuildMalformedRegcodeOmitsNumber(t *testing.T) {
	fs, _, _ := Build(&model.Company{Name: "X OÜ"}, "not-a-number")
	_, ok := fs[schema.CompanyRegcode]
	assert.False(t, ok)
}

func TestBuildPhonePrefersFeedOrderAcrossKinds(t *testing.T) {
	c := &model.Company{
		Name: "X OÜ",
		Comms: []model.CommItem{
			{Kind: model.CommPhone, Value: "+372 600 0000"},
			{Kind: model.CommMobile, Value: "+372 5555 0000"},
		},
	}
	fs, _, _ := Build(c, "1")
	assert.Equal(t, "+372 600 0000", fs[schema.CompanyPhone].Text)
}

func TestBuildSkipsBlankCommEntries(t *testing.T) {
	c := &model.Company{
		Name: "X OÜ",
		Comms: []model.CommItem{
			{Kind: model.CommEmail, Value: "   "},
			{Kind: model.CommEmail, Value: "real@naidis.ee"},
		},
	}
	fs, _, _ := Build(c, "1")
	assert.Equal(t, "real@naidis.ee", fs[schema.CompanyEmail].Text)
}

func TestBuildIsDeterministic(t *testing.T) {
	c := tartuCompany()
	fs1, empty1, _ := Build(c, "11043099")
	fs2, empty2, _ := Build(c, "11043099")
	assert.Equal(t, fs1, fs2)
	assert.Equal(t, empty1, empty2)
}

func TestCountyOf(t *testing.T) {
	assert.Equal(t, "Harju maakond", countyOf("Harju maakond, Tallinn, Kesklinna linnaosa"))
	assert.Equal(t, "Tallinn", countyOf("Tallinn"))
	assert.Equal(t, "", countyOf(""))
}
