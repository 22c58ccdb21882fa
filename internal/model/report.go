package model

import (
	"fmt"
	"strings"
)

// SyncAction names what the company sync did with the workspace page.
type SyncAction string

const (
	SyncCreated SyncAction = "created"
	SyncUpdated SyncAction = "updated"
)

// SyncOutcome is the operator-facing result of one company sync run.
// EmptyFields is transient reporting state and is never persisted.
type SyncOutcome struct {
	Regcode     string     `json:"regcode"`
	CompanyName string     `json:"company_name"`
	Action      SyncAction `json:"action"`
	PageID      string     `json:"page_id"`
	EmptyFields []string   `json:"empty_fields,omitempty"`
}

// Message renders the outcome as a short human-readable status line,
// including a warning listing the fields that stayed empty.
func (o *SyncOutcome) Message() string {
	verb := "Updated"
	if o.Action == SyncCreated {
		verb = "Created"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%s)", verb, o.CompanyName, o.Regcode)
	if len(o.EmptyFields) > 0 {
		fmt.Fprintf(&b, "; fields left empty: %s", strings.Join(o.EmptyFields, ", "))
	}
	return b.String()
}

// Warning reports whether the run completed with empty managed fields.
func (o *SyncOutcome) Warning() bool {
	return len(o.EmptyFields) > 0
}

// StaffReport accumulates per-item results of one staff batch.
// A failed item never aborts the batch; its identity and error text are
// recorded in Errors instead.
type StaffReport struct {
	Created    int      `json:"created"`
	Updated    int      `json:"updated"`
	Superseded int      `json:"superseded"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// Message renders the batch counters as a single status line.
func (r *StaffReport) Message() string {
	msg := fmt.Sprintf("staff sync: %d created, %d updated, %d superseded, %d skipped, %d failed",
		r.Created, r.Updated, r.Superseded, r.Skipped, r.Failed)
	if len(r.Errors) > 0 {
		msg += "; errors: " + strings.Join(r.Errors, "; ")
	}
	return msg
}
