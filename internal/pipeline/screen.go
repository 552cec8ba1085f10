package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-group/market-cli/internal/batch"
	"github.com/meridian-group/market-cli/internal/extract"
	"github.com/meridian-group/market-cli/internal/model"
)

// PredefinedScreens are the upstream screener identifiers the pipeline
// understands. Anything else is rejected before any I/O.
var PredefinedScreens = map[string]string{
	"day_gainers":              "Day Gainers",
	"day_losers":               "Day Losers",
	"most_actives":             "Most Active",
	"undervalued_large_caps":   "Undervalued Large Caps",
	"growth_technology_stocks": "Growth Technology Stocks",
}

// defaultScreenLimit caps how many screened symbols are quoted per call.
const defaultScreenLimit = 10

// Screen fetches a predefined screener page, extracts its symbols, and
// returns a quote row per symbol. Symbols whose quote extraction fails are
// skipped; the call fails only when the screen itself yields nothing.
func (s *Service) Screen(ctx context.Context, screenID string, limit int) ([]model.QuoteRow, error) {
	screenID = strings.ToLower(strings.TrimSpace(screenID))
	if screenID == "" {
		return nil, eris.New("pipeline: screen id is required")
	}
	if _, ok := PredefinedScreens[screenID]; !ok {
		return nil, eris.Errorf("pipeline: unknown screen %q", screenID)
	}
	if limit <= 0 {
		limit = defaultScreenLimit
	}

	doc, err := s.fetch.Fetch(ctx, s.screenerPage(screenID))
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: screen %s", screenID)
	}

	symbols := extract.Symbols(doc.Body, limit)
	if len(symbols) == 0 {
		return nil, eris.Wrapf(ErrNoData, "screen %s", screenID)
	}
	zap.L().Debug("screen: symbols extracted",
		zap.String("screen", screenID),
		zap.Int("count", len(symbols)),
	)

	results := batch.Run(ctx, symbols, func(ctx context.Context, sym string) (*model.QuoteRow, error) {
		return s.Quote(ctx, sym)
	}, batch.Options{
		Concurrency:     s.opts.BatchConcurrency,
		InterBatchDelay: s.opts.InterBatchDelay,
	})

	rows := make([]model.QuoteRow, 0, len(symbols))
	for _, sym := range symbols {
		res := results[sym]
		if !res.OK() || res.Value == nil {
			continue
		}
		rows = append(rows, *res.Value)
	}
	if len(rows) == 0 {
		return nil, eris.Wrapf(ErrNoData, "screen %s", screenID)
	}
	return rows, nil
}
