package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// domField is one data-field slot read from the document.
type domField struct {
	value string // data-value attribute, when present
	text  string // rendered display text
}

// scanDOM collects every element carrying a data-field marker. Elements that
// repeat a field with conflicting values mark that field as conflicted, which
// downstream treats as a miss.
func scanDOM(body []byte) (fields map[string]domField, conflicted map[string]bool) {
	fields = make(map[string]domField)
	conflicted = make(map[string]bool)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fields, conflicted
	}

	doc.Find("[data-field]").Each(func(_ int, sel *goquery.Selection) {
		name := sel.AttrOr("data-field", "")
		if name == "" {
			return
		}
		f := domField{
			value: strings.TrimSpace(sel.AttrOr("data-value", "")),
			text:  strings.TrimSpace(sel.Text()),
		}
		if prev, seen := fields[name]; seen {
			if prev.value != f.value || prev.text != f.text {
				conflicted[name] = true
			}
			return
		}
		fields[name] = f
	})

	return fields, conflicted
}

// decodeDOMField resolves one FamilyDOM signature against the scanned slots.
// The machine-readable data-value attribute wins over display text; display
// text still decodes abbreviated forms like "2.95T".
func decodeDOMField(fields map[string]domField, conflicted map[string]bool, sig FieldSignature, source string) Value {
	if conflicted[sig.Pattern] {
		return Absent()
	}
	f, ok := fields[sig.Pattern]
	if !ok {
		return Absent()
	}

	if sig.Kind == KindString {
		if f.text != "" && !missingTokens[f.text] {
			return Text(f.text, source)
		}
		if f.value != "" && !missingTokens[f.value] {
			return Text(f.value, source)
		}
		return Absent()
	}

	if v, ok := ParseAbbreviated(f.value); ok {
		return Number(v, f.text, source)
	}
	if v, ok := ParseAbbreviated(f.text); ok {
		return Number(v, f.text, source)
	}
	return Absent()
}
