// Package extract locates and decodes embedded field values in raw upstream
// documents.
//
// Two pattern families are supported: escaped-JSON metric fragments embedded
// in page markup, and DOM elements carrying data-field/data-value attributes.
// Extraction never fails: a signature that cannot be located, decoded, or
// disambiguated simply leaves its field absent. A wholly empty snapshot is
// the caller's signal that the document held nothing usable.
package extract

import (
	"go.uber.org/zap"

	"github.com/meridian-group/market-cli/internal/fetcher"
)

// DefaultPlausibilityRatio rejects a DOM value when it is more than two
// orders of magnitude below the JSON value for the same ratio-like field.
// Heuristic, so kept configurable; legitimately tiny ratios may need tuning.
const DefaultPlausibilityRatio = 0.01

// Options tunes extraction behavior.
type Options struct {
	// PlausibilityRatio guards ratio-like fields against upstream display
	// slot collisions: a DOM value only shadows the JSON value when
	// |dom| >= ratio * |json|. Zero means DefaultPlausibilityRatio.
	PlausibilityRatio float64
}

// Extract applies every signature to the document and assembles a snapshot.
//
// When a field resolves through both families, the DOM value wins only if it
// passes the magnitude plausibility check against the JSON value; otherwise
// the JSON value stands. Fields listed in neither family stay absent.
func Extract(doc *fetcher.RawDocument, sigs []FieldSignature, opts Options) *Snapshot {
	ratio := opts.PlausibilityRatio
	if ratio == 0 {
		ratio = DefaultPlausibilityRatio
	}

	snap := NewSnapshot(doc.SourceID, doc.FetchedAt)
	body := string(doc.Body)

	var domSigs []FieldSignature
	for _, sig := range sigs {
		if sig.Family == FamilyDOM {
			domSigs = append(domSigs, sig)
			continue
		}
		snap.Set(sig.Key, decodeJSONField(body, sig, doc.SourceID))
	}

	if len(domSigs) == 0 {
		return snap
	}

	fields, conflicted := scanDOM(doc.Body)
	for _, sig := range domSigs {
		domVal := decodeDOMField(fields, conflicted, sig, doc.SourceID)
		if !domVal.Present {
			continue
		}
		jsonVal, hasJSON := snap.Get(sig.Key)
		if hasJSON && sig.Kind.Numeric() && !plausible(sig.Key, domVal, jsonVal, ratio) {
			zap.L().Debug("extract: rejecting implausible DOM value",
				zap.String("field", sig.Key),
				zap.Any("dom", domVal.Raw),
				zap.Any("json", jsonVal.Raw),
			)
			continue
		}
		snap.Set(sig.Key, domVal)
	}

	return snap
}

// plausible reports whether a DOM-sourced numeric value may shadow the
// JSON-sourced value for the same field. Only ratio-like fields are guarded;
// other fields always accept the DOM value.
func plausible(key string, domVal, jsonVal Value, ratio float64) bool {
	if !RatioKeys[key] {
		return true
	}
	dom, ok := domVal.Float()
	if !ok {
		return false
	}
	js, ok := jsonVal.Float()
	if !ok {
		return true
	}
	return abs(dom) >= ratio*abs(js)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
