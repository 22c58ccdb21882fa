package cleanse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		ok    bool
	}{
		{"plain", "Tartu Mill AS", "Tartu Mill AS", true},
		{"padded", "  info@x.ee \n", "info@x.ee", true},
		{"empty", "", "", false},
		{"whitespace only", " \t ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := String(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFloat(t *testing.T) {
	_, ok := Float(math.NaN())
	assert.False(t, ok)

	_, ok = Float(math.Inf(1))
	assert.False(t, ok)

	got, ok := Float(11043099)
	assert.True(t, ok)
	assert.Equal(t, float64(11043099), got)

	got, ok = Float(0)
	assert.True(t, ok)
	assert.Zero(t, got)
}

func TestAny(t *testing.T) {
	_, ok := Any(nil)
	assert.False(t, ok)

	got, ok := Any("  x ")
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	_, ok = Any(math.NaN())
	assert.False(t, ok)

	got, ok = Any(true)
	assert.True(t, ok)
	assert.Equal(t, true, got)
}
