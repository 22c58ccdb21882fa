// Package staff resolves scraped staff entries against the stored contact
// set of an organization and applies the resulting actions.
package staff

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/schema"
)

// ActionKind names what the resolver decided for one incoming person.
type ActionKind string

const (
	// ActionNone: same person, same role, nothing changed. Counted as
	// skipped, never as an error.
	ActionNone ActionKind = "none"
	// ActionUpdate: same person and role, contact data changed.
	ActionUpdate ActionKind = "update"
	// ActionSupersede: the role has a new holder. The displaced contact is
	// marked superseded (never deleted) and a fresh contact is created.
	ActionSupersede ActionKind = "supersede"
	// ActionCreate: the role was never seen for this organization.
	ActionCreate ActionKind = "create"
)

// Action is the resolver's decision for one incoming person.
type Action struct {
	Kind      ActionKind
	ContactID string          // update target, or the contact being superseded
	Fields    schema.FieldSet // changed fields for ActionUpdate
	Person    model.Person    // the incoming person, for creates
}

// Resolve decides how an incoming (name, role) pair maps onto the existing
// contact set. Deterministic: the same inputs always produce the same
// action. Contacts already superseded never match; their role is held by
// someone else now.
func Resolve(incoming model.Person, existing []model.Contact) Action {
	// Exact (name, role) match first: this is the same person.
	for _, c := range existing {
		if c.Status == model.ContactSuperseded {
			continue
		}
		if sameText(c.Name, incoming.Name) && sameText(c.Role, incoming.Role) {
			changed := changedChannels(c, incoming)
			if len(changed) == 0 {
				return Action{Kind: ActionNone, ContactID: c.ID}
			}
			return Action{Kind: ActionUpdate, ContactID: c.ID, Fields: changed, Person: incoming}
		}
	}

	// Role match under a different name: the role changed hands.
	for _, c := range existing {
		if c.Status == model.ContactSuperseded {
			continue
		}
		if sameText(c.Role, incoming.Role) && !sameText(c.Name, incoming.Name) {
			return Action{Kind: ActionSupersede, ContactID: c.ID, Person: incoming}
		}
	}

	return Action{Kind: ActionCreate, Person: incoming}
}

// changedChannels returns the contact-channel fields whose incoming value
// differs from the stored one. An empty incoming value is "scraper found
// nothing", not an instruction to blank a stored channel.
func changedChannels(stored model.Contact, incoming model.Person) schema.FieldSet {
	fields := make(schema.FieldSet)
	if incoming.Email != "" && incoming.Email != stored.Email {
		fields[schema.ContactEmail] = schema.Text(schema.KindEmail, incoming.Email)
	}
	if incoming.Phone != "" && incoming.Phone != stored.Phone {
		fields[schema.ContactPhone] = schema.Text(schema.KindPhone, incoming.Phone)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// sameText compares names and roles case-insensitively under Estonian
// casing rules, ignoring surrounding whitespace.
func sameText(a, b string) bool {
	lower := cases.Lower(language.Estonian)
	return lower.String(strings.TrimSpace(a)) == lower.String(strings.TrimSpace(b))
}
