package extract

import (
	"encoding/json"
	"strings"
)

// rawFmt is the wire shape of an embedded metric fragment:
// {"raw":3000000000000,"fmt":"3.00T"}. Either member may be missing.
type rawFmt struct {
	Raw *json.Number `json:"raw"`
	Fmt string       `json:"fmt"`
}

// maxFragmentLen bounds a captured object. Real metric fragments are tiny;
// anything longer means we latched onto unrelated markup.
const maxFragmentLen = 512

var fragmentUnescaper = strings.NewReplacer(`\"`, `"`)

// captureObjects returns every balanced-brace object that follows an
// occurrence of the field key, in both escaped (\"key\":) and plain ("key":)
// forms, unescaped and ready for decoding.
func captureObjects(doc, field string) []string {
	var frags []string
	for _, needle := range []string{`\"` + field + `\":`, `"` + field + `":`} {
		for start := 0; ; {
			i := strings.Index(doc[start:], needle)
			if i < 0 {
				break
			}
			pos := start + i + len(needle)
			start = pos
			frag, ok := captureBalanced(doc, pos)
			if !ok {
				continue
			}
			if strings.Contains(frag, `\"`) {
				frag = fragmentUnescaper.Replace(frag)
			}
			frags = append(frags, frag)
		}
	}
	return frags
}

// captureBalanced scans a balanced-brace object starting at or just after
// pos. Escaped fragments interleave backslashes with every quote, so brace
// depth is counted without string-state tracking; metric fragments never
// carry braces inside their display strings.
func captureBalanced(doc string, pos int) (string, bool) {
	for pos < len(doc) && (doc[pos] == ' ' || doc[pos] == '\t') {
		pos++
	}
	if pos >= len(doc) || doc[pos] != '{' {
		return "", false
	}

	depth := 0
	for i := pos; i < len(doc) && i-pos < maxFragmentLen; i++ {
		switch doc[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return doc[pos : i+1], true
			}
		}
	}
	return "", false
}

// captureStrings returns every quoted string following an occurrence of the
// field key. Used for string-kind fields, which embed as plain JSON strings
// rather than raw/fmt objects.
func captureStrings(doc, field string) []string {
	var out []string
	for _, form := range []struct {
		needle string
		quote  string
	}{
		{needle: `\"` + field + `\":\"`, quote: `\"`},
		{needle: `"` + field + `":"`, quote: `"`},
	} {
		for start := 0; ; {
			i := strings.Index(doc[start:], form.needle)
			if i < 0 {
				break
			}
			pos := start + i + len(form.needle)
			start = pos
			end := strings.Index(doc[pos:], form.quote)
			if end < 0 || end > maxFragmentLen {
				continue
			}
			out = append(out, doc[pos:pos+end])
		}
	}
	return out
}

// decodeJSONField resolves one FamilyJSON signature against the document.
// Zero matches, undecodable matches, or conflicting matches are all a miss.
func decodeJSONField(doc string, sig FieldSignature, source string) Value {
	if sig.Kind == KindString {
		return decodeJSONString(doc, sig, source)
	}

	var (
		found Value
		count int
	)
	for _, frag := range captureObjects(doc, sig.Pattern) {
		var rf rawFmt
		if err := json.Unmarshal([]byte(frag), &rf); err != nil {
			continue
		}
		v := valueFromRawFmt(rf, source)
		if !v.Present {
			continue
		}
		if count > 0 {
			prev, _ := found.Float()
			cur, _ := v.Float()
			if prev != cur {
				// Conflicting occurrences: treat as a miss, not an error.
				return Absent()
			}
			continue
		}
		found = v
		count++
	}
	return found
}

func decodeJSONString(doc string, sig FieldSignature, source string) Value {
	var (
		found string
		count int
	)
	for _, s := range captureStrings(doc, sig.Pattern) {
		if s == "" || missingTokens[s] {
			continue
		}
		if count > 0 {
			if s != found {
				return Absent()
			}
			continue
		}
		found = s
		count++
	}
	if count == 0 {
		return Absent()
	}
	return Text(found, source)
}

// valueFromRawFmt prefers the raw member; a missing raw falls back to
// decoding the display string, suffix scaling included.
func valueFromRawFmt(rf rawFmt, source string) Value {
	if rf.Raw != nil {
		if f, err := rf.Raw.Float64(); err == nil {
			return Number(f, rf.Fmt, source)
		}
	}
	if f, ok := ParseAbbreviated(rf.Fmt); ok {
		return Number(f, rf.Fmt, source)
	}
	return Absent()
}
