// Package model defines the canonical records the pipeline hands to callers.
//
// Rows are flat: every field is a primitive or a pointer to one. A nil pointer
// means the upstream had no usable value for that field; it is never collapsed
// to 0 or "". Wrapper types from the extraction layer must not appear here.
package model

import "time"

// QuoteRow is the normalized record for a single equity lookup.
type QuoteRow struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name,omitempty"`
	Price         *float64  `json:"price"`
	Change        *float64  `json:"change"`
	ChangePercent *float64  `json:"change_percent"`
	Volume        *float64  `json:"volume"`
	AvgVolume     *float64  `json:"avg_volume"`
	MarketCap     *float64  `json:"market_cap"`
	TrailingPE    *float64  `json:"trailing_pe"`
	ForwardPE     *float64  `json:"forward_pe"`
	PriceToBook   *float64  `json:"price_to_book"`
	EPS           *float64  `json:"eps"`
	DividendYield *float64  `json:"dividend_yield"`
	Beta          *float64  `json:"beta"`
	Week52Low     *float64  `json:"week52_low"`
	Week52High    *float64  `json:"week52_high"`
	Source        string    `json:"source"`
	FetchDate     time.Time `json:"fetch_date"`
}

// IndicatorRow is the normalized record for one statistical series observation.
type IndicatorRow struct {
	SeriesID        string    `json:"series_id"`
	Name            string    `json:"name,omitempty"`
	Value           *float64  `json:"value"`
	ObservationDate string    `json:"observation_date,omitempty"`
	Units           string    `json:"units,omitempty"`
	Substituted     bool      `json:"substituted,omitempty"`
	Source          string    `json:"source"`
	FetchDate       time.Time `json:"fetch_date"`
}

// RevisionRow reports the outcome of a vintage comparison for one series.
type RevisionRow struct {
	SeriesID        string    `json:"series_id"`
	HasRevisions    bool      `json:"has_revisions"`
	ObservationDate string    `json:"observation_date,omitempty"`
	PreviousValue   *float64  `json:"previous_value"`
	LatestValue     *float64  `json:"latest_value"`
	Delta           *float64  `json:"delta"`
	DeltaPercent    *float64  `json:"delta_percent"`
	Magnitude       string    `json:"magnitude,omitempty"`
	Trend           string    `json:"trend,omitempty"`
	VintagePrevious string    `json:"vintage_previous,omitempty"`
	VintageLatest   string    `json:"vintage_latest,omitempty"`
	Note            string    `json:"note,omitempty"`
	FetchDate       time.Time `json:"fetch_date"`
}

// CorrelationRow reports the heuristic co-movement score for a symbol pair.
//
// The score is a composite of beta similarity, short-term performance
// similarity, and 52-week-range position. It approximates co-movement; it is
// NOT a Pearson correlation computed from price history.
type CorrelationRow struct {
	SymbolA     string    `json:"symbol_a"`
	SymbolB     string    `json:"symbol_b"`
	Score       *float64  `json:"score"`
	BetaSim     *float64  `json:"beta_similarity"`
	PerfSim     *float64  `json:"performance_similarity"`
	RangePosSim *float64  `json:"range_position_similarity"`
	Method      string    `json:"method"`
	FetchDate   time.Time `json:"fetch_date"`
}

// Float returns a pointer to v. Convenience for building rows and fixtures.
func Float(v float64) *float64 { return &v }
