package extract

import (
	"math"
	"strconv"
	"strings"
)

// Value is one decoded field value plus its upstream display string.
// The zero Value is absent. Values never cross the pipeline's output
// boundary; canonical rows unwrap them to primitives first.
type Value struct {
	Raw       any    // float64, bool, or string
	Formatted string // upstream display string, may be empty
	Present   bool
	Source    string // source ID that produced the value
}

// Absent is the canonical missing value.
func Absent() Value { return Value{} }

// Number builds a present numeric value.
func Number(raw float64, formatted, source string) Value {
	return Value{Raw: raw, Formatted: formatted, Present: true, Source: source}
}

// Text builds a present string value.
func Text(raw, source string) Value {
	return Value{Raw: raw, Formatted: raw, Present: true, Source: source}
}

// Bool builds a present boolean value.
func Bool(raw bool, source string) Value {
	return Value{Raw: raw, Present: true, Source: source}
}

// Float returns the numeric payload, if the value is a present number.
func (v Value) Float() (float64, bool) {
	if !v.Present {
		return 0, false
	}
	f, ok := v.Raw.(float64)
	return f, ok
}

// Str returns the string payload, if the value is a present string.
func (v Value) Str() (string, bool) {
	if !v.Present {
		return "", false
	}
	s, ok := v.Raw.(string)
	return s, ok
}

// suffix multipliers for abbreviated display strings. "G" appears on some
// locales as a billion marker alongside "B".
var suffixScale = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'G': 1e9,
	'T': 1e12,
}

// missingTokens are display strings that always decode to absent, never zero.
var missingTokens = map[string]bool{
	"":    true,
	"--":  true,
	"-":   true,
	"N/A": true,
	"n/a": true,
	".":   true,
}

// ParseAbbreviated decodes a display string like "3.00T", "845.2M", "1,234.56"
// or "0.56%" into a float64. Returns false for missing-value tokens and
// anything that does not parse to a finite number.
func ParseAbbreviated(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if missingTokens[s] {
		return 0, false
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}

	scale := 1.0
	last := s[len(s)-1]
	if mult, ok := suffixScale[toUpperByte(last)]; ok && len(s) > 1 {
		scale = mult
		s = s[:len(s)-1]
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f * scale, true
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
