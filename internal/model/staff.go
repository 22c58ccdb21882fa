package model

// ContactStatus marks whether a contact is the current holder of its role.
// Supersession is a status change, never a delete: a superseded contact
// stays queryable with all identifying fields intact.
type ContactStatus string

const (
	ContactActive     ContactStatus = "Active"
	ContactSuperseded ContactStatus = "Superseded"
)

// Person is an incoming scraped staff entry for one organization.
type Person struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Contact is a stored staff contact as read from the workspace database.
type Contact struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Role   string        `json:"role"`
	Email  string        `json:"email,omitempty"`
	Phone  string        `json:"phone,omitempty"`
	Status ContactStatus `json:"status"`
	OrgID  string        `json:"org_id,omitempty"`
}
