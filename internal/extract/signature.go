package extract

// Kind declares how a field's raw payload is typed.
type Kind int

const (
	KindNumber Kind = iota
	KindInteger
	KindPercent
	KindBool
	KindString
	KindTimestamp
)

// Numeric reports whether the kind decodes to a float64 payload.
func (k Kind) Numeric() bool {
	switch k {
	case KindNumber, KindInteger, KindPercent, KindTimestamp:
		return true
	default:
		return false
	}
}

// Family selects which pattern engine locates the field in a raw document.
type Family int

const (
	// FamilyJSON captures escaped-JSON fragments of the shape
	// "<field>":{"raw":<number>,"fmt":"<string>"} embedded in markup.
	FamilyJSON Family = iota
	// FamilyDOM scans elements carrying data-field/data-value attributes.
	FamilyDOM
)

// FieldSignature declares how to locate and decode one field from a raw
// document. Signatures are defined per source at init and never mutated.
type FieldSignature struct {
	// Key is the field name in the produced snapshot.
	Key string
	// Pattern is the upstream identifier: the embedded JSON field name for
	// FamilyJSON, or the data-field marker for FamilyDOM.
	Pattern string
	Family  Family
	Kind    Kind
}

// QuoteSignatures describes the metric fields of a quote/statistics page.
// Most metrics live in the embedded escaped-JSON store; a handful also render
// through data-field DOM slots, which are preferred when plausible (they
// update intraday ahead of the JSON store).
func QuoteSignatures() []FieldSignature {
	return []FieldSignature{
		{Key: "price", Pattern: "regularMarketPrice", Family: FamilyJSON, Kind: KindNumber},
		{Key: "change", Pattern: "regularMarketChange", Family: FamilyJSON, Kind: KindNumber},
		{Key: "change_percent", Pattern: "regularMarketChangePercent", Family: FamilyJSON, Kind: KindPercent},
		{Key: "volume", Pattern: "regularMarketVolume", Family: FamilyJSON, Kind: KindInteger},
		{Key: "avg_volume", Pattern: "averageDailyVolume3Month", Family: FamilyJSON, Kind: KindInteger},
		{Key: "market_cap", Pattern: "marketCap", Family: FamilyJSON, Kind: KindNumber},
		{Key: "trailing_pe", Pattern: "trailingPE", Family: FamilyJSON, Kind: KindNumber},
		{Key: "forward_pe", Pattern: "forwardPE", Family: FamilyJSON, Kind: KindNumber},
		{Key: "price_to_book", Pattern: "priceToBook", Family: FamilyJSON, Kind: KindNumber},
		{Key: "eps", Pattern: "epsTrailingTwelveMonths", Family: FamilyJSON, Kind: KindNumber},
		{Key: "dividend_yield", Pattern: "dividendYield", Family: FamilyJSON, Kind: KindPercent},
		{Key: "beta", Pattern: "beta", Family: FamilyJSON, Kind: KindNumber},
		{Key: "week52_low", Pattern: "fiftyTwoWeekLow", Family: FamilyJSON, Kind: KindNumber},
		{Key: "week52_high", Pattern: "fiftyTwoWeekHigh", Family: FamilyJSON, Kind: KindNumber},
		{Key: "name", Pattern: "shortName", Family: FamilyJSON, Kind: KindString},

		// DOM slots. price/change update ahead of the JSON store; trailing_pe
		// shares a display slot with per-share metrics on some layouts, which
		// the plausibility check guards against.
		{Key: "price", Pattern: "regularMarketPrice", Family: FamilyDOM, Kind: KindNumber},
		{Key: "change", Pattern: "regularMarketChange", Family: FamilyDOM, Kind: KindNumber},
		{Key: "change_percent", Pattern: "regularMarketChangePercent", Family: FamilyDOM, Kind: KindPercent},
		{Key: "market_cap", Pattern: "marketCap", Family: FamilyDOM, Kind: KindNumber},
		{Key: "trailing_pe", Pattern: "trailingPE", Family: FamilyDOM, Kind: KindNumber},
	}
}

// RatioKeys are quote fields where a DOM slot is known to sometimes render a
// different, per-share sized metric. DOM values for these keys must pass the
// magnitude plausibility check before they can shadow the JSON value.
var RatioKeys = map[string]bool{
	"trailing_pe":   true,
	"forward_pe":    true,
	"price_to_book": true,
	"market_cap":    true,
}
