// Package model holds the domain types shared across the sync pipeline.
package model

// CommKind identifies the type of a communication channel entry in the
// business registry feed.
type CommKind string

const (
	CommEmail   CommKind = "EMAIL"
	CommPhone   CommKind = "TEL"
	CommMobile  CommKind = "MOB"
	CommWebsite CommKind = "WWW"
)

// CommItem is one communication channel entry. Entries are kept in feed
// order; the builder treats the first match per kind as authoritative.
type CommItem struct {
	Kind  CommKind `json:"kind"`
	Value string   `json:"value"`
}

// Address is one registered address of a company. Full is the
// ADS-normalized full address string from the registry.
type Address struct {
	Full string `json:"full"`
}

// Activity is one declared field of activity with its EMTAK code.
type Activity struct {
	Code    string `json:"code"`
	Text    string `json:"text"`
	Primary bool   `json:"primary"`
}

// Company is the read-only snapshot of one organization as cached from the
// business registry feed. It is immutable for the duration of a sync run.
type Company struct {
	Regcode    string     `json:"regcode"`
	Name       string     `json:"name"`
	LinkedIn   string     `json:"linkedin,omitempty"`
	Addresses  []Address  `json:"addresses,omitempty"`
	Comms      []CommItem `json:"comms,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
}

// PrimaryActivity returns the activity flagged as the main field of
// activity, or nil if none is flagged.
func (c *Company) PrimaryActivity() *Activity {
	for i := range c.Activities {
		if c.Activities[i].Primary {
			return &c.Activities[i]
		}
	}
	return nil
}
