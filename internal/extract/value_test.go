package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbbreviated(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3.00T", 3e12, true},
		{"2.95T", 2.95e12, true},
		{"845.2M", 845.2e6, true},
		{"1.5B", 1.5e9, true},
		{"1.5G", 1.5e9, true},
		{"12K", 12e3, true},
		{"12k", 12e3, true},
		{"1,234.56", 1234.56, true},
		{"$189.95", 189.95, true},
		{"0.56%", 0.56, true},
		{"-4.2", -4.2, true},
		{"193.42", 193.42, true},
		{"--", 0, false},
		{"-", 0, false},
		{"N/A", 0, false},
		{"n/a", 0, false},
		{".", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"T", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAbbreviated(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InEpsilon(t, tt.want, got, 1e-9, "input %q", tt.in)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	v := Number(42.5, "42.50", "test")
	f, ok := v.Float()
	require.True(t, ok)
	assert.Equal(t, 42.5, f)
	_, ok = v.Str()
	assert.False(t, ok)

	s := Text("Apple Inc.", "test")
	str, ok := s.Str()
	require.True(t, ok)
	assert.Equal(t, "Apple Inc.", str)

	a := Absent()
	assert.False(t, a.Present)
	_, ok = a.Float()
	assert.False(t, ok)
	_, ok = a.Str()
	assert.False(t, ok)
}
