// Package vintage compares time-stamped snapshots of the same statistical
// observation and reports revision deltas between them.
package vintage

import (
	"github.com/shopspring/decimal"
)

// Observation is one dated value inside a vintage. A nil value is an
// observation the upstream published as missing.
type Observation struct {
	Date  string // YYYY-MM-DD
	Value *float64
}

// Vintage is one as-of snapshot of a series: the observations exactly as the
// upstream published them on Date.
type Vintage struct {
	Date         string // upstream-assigned publication date, YYYY-MM-DD
	Observations []Observation
}

// Revision magnitudes, classified on |delta percent|.
const (
	MagnitudeNone     = "none"
	MagnitudeMinor    = "minor"    // < 1%
	MagnitudeModerate = "moderate" // 1% to 5%
	MagnitudeMajor    = "major"    // >= 5%
)

// Analysis is the outcome of comparing the two most recent vintages. When
// HasRevisions is false, Note explains why and the numeric fields are
// meaningless.
type Analysis struct {
	HasRevisions    bool
	ObservationDate string
	PreviousValue   float64
	LatestValue     float64
	Delta           float64
	DeltaPercent    float64
	Magnitude       string
	Trend           string
	VintagePrevious string
	VintageLatest   string
	Note            string
}

// Analyze compares the two most recent vintages. Input must be sorted
// descending by vintage date. Exactly one revision is computed per call: the
// most recent observation of the latest vintage that also appears in the
// previous vintage. Fewer than two usable vintages, or no shared observation
// date, yields HasRevisions=false with a note — never an error.
func Analyze(vintages []Vintage) Analysis {
	if len(vintages) < 2 {
		return Analysis{Note: "fewer than two vintages available; nothing to compare"}
	}

	latest, previous := vintages[0], vintages[1]
	if len(latest.Observations) == 0 || len(previous.Observations) == 0 {
		return Analysis{Note: "a vintage has no observations; nothing to compare"}
	}

	prevByDate := make(map[string]*float64, len(previous.Observations))
	for _, obs := range previous.Observations {
		if obs.Value != nil {
			prevByDate[obs.Date] = obs.Value
		}
	}

	// Observations are ordered most recent first; take the first one the
	// previous vintage also published.
	for _, obs := range latest.Observations {
		if obs.Value == nil {
			continue
		}
		prev, ok := prevByDate[obs.Date]
		if !ok {
			continue
		}
		return compare(obs.Date, *prev, *obs.Value, previous.Date, latest.Date)
	}

	return Analysis{
		Note: "no observation date shared between the two most recent vintages",
	}
}

// compare computes the signed delta for one matched observation pair.
// Decimal arithmetic keeps deltas exact for values like 100 -> 103.
func compare(obsDate string, prev, latest float64, prevVintage, latestVintage string) Analysis {
	dPrev := decimal.NewFromFloat(prev)
	dLatest := decimal.NewFromFloat(latest)
	delta := dLatest.Sub(dPrev)

	a := Analysis{
		HasRevisions:    true,
		ObservationDate: obsDate,
		PreviousValue:   prev,
		LatestValue:     latest,
		Delta:           delta.InexactFloat64(),
		VintagePrevious: prevVintage,
		VintageLatest:   latestVintage,
	}

	if !dPrev.IsZero() {
		a.DeltaPercent = delta.Div(dPrev).Mul(decimal.NewFromInt(100)).Round(6).InexactFloat64()
	} else if !delta.IsZero() {
		a.Note = "previous value is zero; delta percent undefined"
	}

	a.Trend, a.Magnitude = classify(delta, a.DeltaPercent)
	return a
}

func classify(delta decimal.Decimal, deltaPercent float64) (trend, magnitude string) {
	switch {
	case delta.IsZero():
		return "unchanged", MagnitudeNone
	case delta.IsPositive():
		trend = "revised up"
	default:
		trend = "revised down"
	}

	abs := deltaPercent
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 1:
		magnitude = MagnitudeMinor
	case abs < 5:
		magnitude = MagnitudeModerate
	default:
		magnitude = MagnitudeMajor
	}
	return trend, magnitude
}
