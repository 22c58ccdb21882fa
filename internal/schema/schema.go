// Package schema declares the managed field schemas of the workspace
// databases and provides a single generic serializer between FieldSet
// values and Notion property payloads. Field handling is driven by the
// declared kind of each field, never by matching property name strings.
package schema

// Kind is the target representation of a field in the workspace database.
type Kind string

const (
	KindTitle       Kind = "title"
	KindRichText    Kind = "rich_text"
	KindNumber      Kind = "number"
	KindEmail       Kind = "email"
	KindPhone       Kind = "phone_number"
	KindURL         Kind = "url"
	KindMultiSelect Kind = "multi_select"
	KindSelect      Kind = "select"
	KindRelation    Kind = "relation"
)

// Field declares one managed field: its workspace property name, target
// representation, human-readable label for operator reports, and merge
// behavior. Conditional fields carry a placeholder sentinel written when a
// lookup found nothing; the sentinel marks "looked but did not find" and is
// treated as absence by the merge policy.
type Field struct {
	Name        string
	Kind        Kind
	Label       string
	Placeholder string
	Conditional bool
	Track       bool // include in the empty-fields report
}

// Value is a typed field value. The zero Value is empty.
type Value struct {
	Kind      Kind
	Text      string
	Number    float64
	HasNumber bool
	Relation  []string
}

// Empty reports whether the value holds no content. A placeholder sentinel
// is content: it is distinguishable from genuine absence and the merge
// policy special-cases it separately.
func (v Value) Empty() bool {
	switch v.Kind {
	case KindNumber:
		return !v.HasNumber
	case KindRelation:
		return len(v.Relation) == 0
	default:
		return v.Text == ""
	}
}

// Text constructs a text-kinded value.
func Text(kind Kind, s string) Value {
	return Value{Kind: kind, Text: s}
}

// Number constructs a number value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Number: n, HasNumber: true}
}

// Relation constructs a relation value pointing at the given page IDs.
func Relation(ids ...string) Value {
	return Value{Kind: KindRelation, Relation: ids}
}

// FieldSet maps workspace property names to values. Fields that should not
// be written are absent from the map entirely.
type FieldSet map[string]Value

// Clone returns a shallow copy of the field set.
func (fs FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Schema is an ordered list of field declarations with name lookup.
type Schema struct {
	Fields []Field
	byName map[string]Field
}

// New builds a Schema from the declared field order.
func New(fields []Field) *Schema {
	s := &Schema{Fields: fields, byName: make(map[string]Field, len(fields))}
	for _, f := range fields {
		s.byName[f.Name] = f
	}
	return s
}

// Lookup returns the declaration for a property name.
func (s *Schema) Lookup(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Placeholder returns the "looked but did not find" sentinel for a field,
// or "" if the field has none.
func (s *Schema) Placeholder(name string) string {
	return s.byName[name].Placeholder
}

// IsPlaceholder reports whether v holds the field's placeholder sentinel.
func (s *Schema) IsPlaceholder(name string, v Value) bool {
	p := s.byName[name].Placeholder
	return p != "" && v.Text == p
}

// Conditional reports whether the field is only written when the stored
// value is absent or a placeholder.
func (s *Schema) Conditional(name string) bool {
	return s.byName[name].Conditional
}
