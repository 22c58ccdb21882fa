package schema

import (
	"strings"

	"github.com/jomei/notionapi"
)

// ToProperties serializes a field set into a Notion properties payload.
// Serialization is driven entirely by the declared kind of each field;
// fields absent from the set are omitted from the payload.
func (s *Schema) ToProperties(fs FieldSet) notionapi.Properties {
	props := make(notionapi.Properties, len(fs))
	for _, f := range s.Fields {
		v, ok := fs[f.Name]
		if !ok {
			continue
		}
		switch f.Kind {
		case KindTitle:
			props[f.Name] = notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: richText(v.Text),
			}
		case KindRichText:
			props[f.Name] = notionapi.RichTextProperty{
				Type:     notionapi.PropertyTypeRichText,
				RichText: richText(v.Text),
			}
		case KindNumber:
			if !v.HasNumber {
				continue
			}
			props[f.Name] = notionapi.NumberProperty{
				Type:   notionapi.PropertyTypeNumber,
				Number: v.Number,
			}
		case KindEmail:
			props[f.Name] = notionapi.EmailProperty{
				Type:  notionapi.PropertyTypeEmail,
				Email: v.Text,
			}
		case KindPhone:
			props[f.Name] = notionapi.PhoneNumberProperty{
				Type:        notionapi.PropertyTypePhoneNumber,
				PhoneNumber: v.Text,
			}
		case KindURL:
			props[f.Name] = notionapi.URLProperty{
				Type: notionapi.PropertyTypeURL,
				URL:  v.Text,
			}
		case KindMultiSelect:
			opts := []notionapi.Option{}
			if v.Text != "" {
				opts = append(opts, notionapi.Option{Name: SanitizeOption(v.Text)})
			}
			props[f.Name] = notionapi.MultiSelectProperty{
				Type:        notionapi.PropertyTypeMultiSelect,
				MultiSelect: opts,
			}
		case KindSelect:
			props[f.Name] = notionapi.SelectProperty{
				Type:   notionapi.PropertyTypeSelect,
				Select: notionapi.Option{Name: v.Text},
			}
		case KindRelation:
			rels := make([]notionapi.Relation, 0, len(v.Relation))
			for _, id := range v.Relation {
				rels = append(rels, notionapi.Relation{ID: notionapi.PageID(id)})
			}
			props[f.Name] = notionapi.RelationProperty{
				Type:     notionapi.PropertyTypeRelation,
				Relation: rels,
			}
		}
	}
	return props
}

// FromProperties parses a Notion page's properties back into a field set.
// Unknown or malformed properties are skipped; missing properties yield no
// entry so the merge policy sees them as absent.
func (s *Schema) FromProperties(props notionapi.Properties) FieldSet {
	fs := make(FieldSet)
	for _, f := range s.Fields {
		prop, ok := props[f.Name]
		if !ok || prop == nil {
			continue
		}
		switch p := prop.(type) {
		case *notionapi.TitleProperty:
			if t := PlainText(p.Title); t != "" {
				fs[f.Name] = Text(KindTitle, t)
			}
		case *notionapi.RichTextProperty:
			if t := PlainText(p.RichText); t != "" {
				fs[f.Name] = Text(KindRichText, t)
			}
		case *notionapi.NumberProperty:
			fs[f.Name] = Number(p.Number)
		case *notionapi.EmailProperty:
			if p.Email != "" {
				fs[f.Name] = Text(KindEmail, p.Email)
			}
		case *notionapi.PhoneNumberProperty:
			if p.PhoneNumber != "" {
				fs[f.Name] = Text(KindPhone, p.PhoneNumber)
			}
		case *notionapi.URLProperty:
			if p.URL != "" {
				fs[f.Name] = Text(KindURL, p.URL)
			}
		case *notionapi.MultiSelectProperty:
			if len(p.MultiSelect) > 0 {
				fs[f.Name] = Value{Kind: KindMultiSelect, Text: p.MultiSelect[0].Name}
			}
		case *notionapi.SelectProperty:
			if p.Select.Name != "" {
				fs[f.Name] = Text(KindSelect, p.Select.Name)
			}
		case *notionapi.RelationProperty:
			ids := make([]string, 0, len(p.Relation))
			for _, r := range p.Relation {
				ids = append(ids, string(r.ID))
			}
			if len(ids) > 0 {
				fs[f.Name] = Relation(ids...)
			}
		}
	}
	return fs
}

// PlainText concatenates the plain_text values from a slice of RichText,
// falling back to the text content for payloads built locally.
func PlainText(rts []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range rts {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
			continue
		}
		if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

// SanitizeOption makes a string safe for use as a multi-select option name.
// Option names reject commas.
func SanitizeOption(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}},
	}
}
