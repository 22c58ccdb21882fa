// Package sync builds candidate field sets from registry snapshots and
// reconciles them against the workspace database without destroying
// manually curated content.
package sync

import (
	"strconv"
	"strings"

	"github.com/nordlink/regsync/internal/cleanse"
	"github.com/nordlink/regsync/internal/emtak"
	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/schema"
)

// Build transforms a registry snapshot into the managed field set plus the
// list of fields that had no discoverable value. The empty-field labels
// follow the schema's declared order, each field checked once. Pure: no
// lookups, no side effects.
func Build(c *model.Company, regcode string) (schema.FieldSet, []string, string) {
	sch := schema.Company()
	fs := make(schema.FieldSet)
	found := make(map[string]bool)

	name, _ := cleanse.String(c.Name)
	fs[schema.CompanyName] = schema.Text(schema.KindTitle, name)
	found[schema.CompanyName] = name != ""

	// Malformed keys produce no number field rather than an error; the
	// caller already treated the key as a lookup key, so at this point a
	// non-numeric key only means the stored field stays null.
	if n, err := strconv.ParseFloat(strings.TrimSpace(regcode), 64); err == nil {
		fs[schema.CompanyRegcode] = schema.Number(n)
		found[schema.CompanyRegcode] = true
	}

	address := firstAddress(c)
	fs[schema.CompanyAddress] = schema.Text(schema.KindRichText, address)
	found[schema.CompanyAddress] = address != ""

	county := countyOf(address)
	fs[schema.CompanyCounty] = schema.Text(schema.KindMultiSelect, county)
	found[schema.CompanyCounty] = county != ""

	email, phone, web := scanComms(c.Comms)
	setConditional(fs, found, sch, schema.CompanyEmail, schema.KindEmail, email)
	setConditional(fs, found, sch, schema.CompanyPhone, schema.KindPhone, phone)
	setConditional(fs, found, sch, schema.CompanyWebsite, schema.KindURL, web)

	linkedin, _ := cleanse.String(c.LinkedIn)
	setConditional(fs, found, sch, schema.CompanyLinkedIn, schema.KindURL, linkedin)

	var activityText, sectionText string
	if pa := c.PrimaryActivity(); pa != nil {
		activityText, _ = cleanse.String(pa.Text)
		if code, ok := cleanse.String(pa.Code); ok {
			sectionText, _ = emtak.Section(code)
		}
	}
	fs[schema.CompanyActivity] = schema.Text(schema.KindRichText, activityText)
	found[schema.CompanyActivity] = activityText != ""
	fs[schema.CompanySection] = schema.Text(schema.KindMultiSelect, sectionText)
	found[schema.CompanySection] = sectionText != ""

	var empty []string
	for _, f := range sch.Fields {
		if f.Track && !found[f.Name] {
			empty = append(empty, f.Label)
		}
	}

	return fs, empty, name
}

// setConditional stores the cleaned value, or the field's placeholder
// sentinel when the lookup found nothing. The sentinel is a real value:
// "looked but did not find", not absence.
func setConditional(fs schema.FieldSet, found map[string]bool, sch *schema.Schema, name string, kind schema.Kind, value string) {
	if value != "" {
		fs[name] = schema.Text(kind, value)
		found[name] = true
		return
	}
	fs[name] = schema.Text(kind, sch.Placeholder(name))
}

// scanComms walks the communication entries in feed order and keeps the
// first match per channel kind. Ordering in the source data is significant:
// the registry lists the primary channel first.
func scanComms(items []model.CommItem) (email, phone, web string) {
	for _, item := range items {
		v, ok := cleanse.String(item.Value)
		if !ok {
			continue
		}
		switch item.Kind {
		case model.CommEmail:
			if email == "" {
				email = v
			}
		case model.CommPhone, model.CommMobile:
			if phone == "" {
				phone = v
			}
		case model.CommWebsite:
			if web == "" {
				web = v
			}
		}
	}
	return email, phone, web
}

func firstAddress(c *model.Company) string {
	for _, a := range c.Addresses {
		if v, ok := cleanse.String(a.Full); ok {
			return v
		}
	}
	return ""
}

// countyOf derives the county from the first comma-delimited segment of the
// normalized full address.
func countyOf(address string) string {
	if address == "" {
		return ""
	}
	seg, _, _ := strings.Cut(address, ",")
	return strings.TrimSpace(seg)
}
