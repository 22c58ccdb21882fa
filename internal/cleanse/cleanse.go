// Package cleanse normalizes raw values scraped or looked up from external
// feeds. A value is either usable after cleaning or absent; callers branch
// on the boolean, never on sentinel strings.
package cleanse

import (
	"math"
	"strings"
)

// String trims s and reports whether anything remains.
func String(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Float rejects NaN and infinities, which the registry feed uses as
// missing-value markers in numeric columns.
func Float(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Any cleans a value of unknown type as decoded from heterogeneous feed
// JSON. nil is absent, strings are trimmed, floats are NaN-checked, and
// every other type passes through unchanged.
func Any(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		return String(t)
	case float64:
		return Float(t)
	default:
		return v, true
	}
}
