package sync

import (
	"github.com/nordlink/regsync/internal/schema"
)

// Merge reconciles a freshly built candidate field set against the fields
// currently stored on a workspace page, returning the minimal set that
// actually needs writing.
//
// Registry-owned fields (name, key, address, county, industry) are written
// unconditionally: the registry is authoritative and this system is their
// sole writer. Contact channels are written only while the stored value is
// absent or the field's placeholder sentinel; anything else is assumed
// manually curated and must survive a re-sync untouched. Skipped fields are
// omitted from the result entirely, never echoed back with old values.
func Merge(sch *schema.Schema, existing, candidate schema.FieldSet) schema.FieldSet {
	out := make(schema.FieldSet)
	for _, f := range sch.Fields {
		cand, ok := candidate[f.Name]
		if !ok {
			continue
		}
		if !f.Conditional {
			out[f.Name] = cand
			continue
		}

		cur, present := existing[f.Name]
		if !present || cur.Empty() || sch.IsPlaceholder(f.Name, cur) {
			out[f.Name] = cand
		}
	}
	return out
}
