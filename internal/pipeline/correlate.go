package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/meridian-group/market-cli/internal/batch"
	"github.com/meridian-group/market-cli/internal/model"
)

// correlationMethod labels the score so callers cannot mistake it for a
// statistically computed correlation.
const correlationMethod = "heuristic composite (beta, short-term performance, 52-week range position)"

// Correlate scores pairwise co-movement across the given symbols. The score
// is a heuristic composite, not a Pearson correlation from price history.
// At least two valid symbols are required; the precondition is checked
// before any network call.
func (s *Service) Correlate(ctx context.Context, symbols []string) ([]model.CorrelationRow, error) {
	cleaned := make([]string, 0, len(symbols))
	seen := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		cleaned = append(cleaned, sym)
	}
	if len(cleaned) < 2 {
		return nil, eris.New("pipeline: correlation requires at least two distinct symbols")
	}

	results := batch.Run(ctx, cleaned, func(ctx context.Context, sym string) (*model.QuoteRow, error) {
		return s.Quote(ctx, sym)
	}, batch.Options{
		Concurrency:     s.opts.BatchConcurrency,
		InterBatchDelay: s.opts.InterBatchDelay,
	})

	quotes := make([]model.QuoteRow, 0, len(cleaned))
	for _, sym := range cleaned {
		res := results[sym]
		if !res.OK() || res.Value == nil {
			continue
		}
		quotes = append(quotes, *res.Value)
	}
	if len(quotes) < 2 {
		return nil, eris.Wrap(ErrNoData, "correlate")
	}

	var rows []model.CorrelationRow
	for i := 0; i < len(quotes); i++ {
		for j := i + 1; j < len(quotes); j++ {
			rows = append(rows, s.scorePair(quotes[i], quotes[j]))
		}
	}
	return rows, nil
}

// Component weights for the composite score.
const (
	betaWeight  = 0.4
	perfWeight  = 0.3
	rangeWeight = 0.3
)

// scorePair builds the composite for one pair. Components missing on either
// side are dropped and the remaining weights renormalized; a pair with no
// usable component gets a nil score.
func (s *Service) scorePair(a, b model.QuoteRow) model.CorrelationRow {
	row := model.CorrelationRow{
		SymbolA:   a.Symbol,
		SymbolB:   b.Symbol,
		Method:    correlationMethod,
		FetchDate: s.now(),
	}

	var total, weight float64

	if sim, ok := betaSimilarity(a.Beta, b.Beta); ok {
		row.BetaSim = model.Float(sim)
		total += betaWeight * sim
		weight += betaWeight
	}
	if sim, ok := performanceSimilarity(a.ChangePercent, b.ChangePercent); ok {
		row.PerfSim = model.Float(sim)
		total += perfWeight * sim
		weight += perfWeight
	}
	if sim, ok := rangePositionSimilarity(a, b); ok {
		row.RangePosSim = model.Float(sim)
		total += rangeWeight * sim
		weight += rangeWeight
	}

	if weight > 0 {
		row.Score = model.Float(total / weight)
	}
	return row
}

// betaSimilarity maps |betaA - betaB| onto [0,1]; two full points of beta
// apart scores zero.
func betaSimilarity(a, b *float64) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	diff := abs(*a - *b)
	if diff > 2 {
		diff = 2
	}
	return 1 - diff/2, true
}

// performanceSimilarity compares short-term percentage moves; ten points
// apart scores zero.
func performanceSimilarity(a, b *float64) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	diff := abs(*a - *b)
	if diff > 10 {
		diff = 10
	}
	return 1 - diff/10, true
}

// rangePositionSimilarity compares where each price sits inside its own
// 52-week range.
func rangePositionSimilarity(a, b model.QuoteRow) (float64, bool) {
	posA, okA := rangePosition(a)
	posB, okB := rangePosition(b)
	if !okA || !okB {
		return 0, false
	}
	return 1 - abs(posA-posB), true
}

func rangePosition(q model.QuoteRow) (float64, bool) {
	if q.Price == nil || q.Week52Low == nil || q.Week52High == nil {
		return 0, false
	}
	span := *q.Week52High - *q.Week52Low
	if span <= 0 {
		return 0, false
	}
	pos := (*q.Price - *q.Week52Low) / span
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
