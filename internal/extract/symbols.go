package extract

import "regexp"

// symbolPattern matches embedded screener row symbols in both plain and
// escaped JSON forms.
var symbolPattern = regexp.MustCompile(`\\?"symbol\\?":\s*\\?"([A-Z][A-Z0-9.\-]{0,9})\\?"`)

// Symbols scans a screener document for embedded row symbols, preserving
// first-seen order and deduplicating. max caps the result; max <= 0 means
// unlimited.
func Symbols(body []byte, max int) []string {
	matches := symbolPattern.FindAllSubmatch(body, -1)
	var out []string
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		sym := string(m[1])
		if seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
