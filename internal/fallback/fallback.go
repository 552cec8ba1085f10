// Package fallback resolves absent field values through declared substitute
// sources.
//
// A substitute is consulted only when the primary attempt produced no value.
// Substitute failures never propagate: the worst outcome of a fallback is the
// absence the caller already had.
package fallback

import (
	"context"
	_ "embed"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/meridian-group/market-cli/internal/extract"
)

//go:embed substitutes.yaml
var defaultTableYAML []byte

// Substitute names an alternate key for a primary key, with the documented
// reason the approximation is acceptable.
type Substitute struct {
	Key  string `yaml:"substitute"`
	Note string `yaml:"note"`
}

// Table maps primary keys to their declared substitutes.
type Table struct {
	Series map[string]Substitute `yaml:"series"`
}

// ParseTable decodes a substitute table from YAML.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "fallback: parse table")
	}
	if t.Series == nil {
		t.Series = make(map[string]Substitute)
	}
	return &t, nil
}

// DefaultTable returns the embedded substitute table.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultTableYAML)
}

// Lookup returns the substitute for key, if one is declared.
func (t *Table) Lookup(key string) (Substitute, bool) {
	s, ok := t.Series[key]
	return s, ok
}

// FetchFunc retrieves a value from a substitute source. The coordinator owns
// error handling; implementations just fetch.
type FetchFunc func(ctx context.Context, substituteKey string) (extract.Value, error)

// Coordinator applies the substitute table to per-field resolution.
type Coordinator struct {
	table *Table
}

// NewCoordinator creates a coordinator over the given table.
func NewCoordinator(table *Table) *Coordinator {
	return &Coordinator{table: table}
}

// Resolve returns the primary value when present. Otherwise it consults the
// declared substitute, if any, and returns its value on success. Substitute
// errors and misses are swallowed: the field stays absent.
func (c *Coordinator) Resolve(ctx context.Context, key string, primary extract.Value, fetch FetchFunc) extract.Value {
	if primary.Present {
		return primary
	}

	sub, ok := c.table.Lookup(key)
	if !ok || fetch == nil {
		return extract.Absent()
	}

	v, err := fetch(ctx, sub.Key)
	if err != nil {
		zap.L().Debug("fallback: substitute fetch failed",
			zap.String("key", key),
			zap.String("substitute", sub.Key),
			zap.Error(err),
		)
		return extract.Absent()
	}
	if !v.Present {
		return extract.Absent()
	}

	zap.L().Debug("fallback: substituted",
		zap.String("key", key),
		zap.String("substitute", sub.Key),
	)
	if v.Source == "" {
		v.Source = "fallback:" + sub.Key
	}
	return v
}
