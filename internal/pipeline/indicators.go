package pipeline

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-group/market-cli/internal/batch"
	"github.com/meridian-group/market-cli/internal/extract"
	"github.com/meridian-group/market-cli/internal/model"
	"github.com/meridian-group/market-cli/pkg/fred"
)

// DefaultIndicators is the standard macro dashboard series set.
var DefaultIndicators = []string{
	"GDP",      // Gross Domestic Product
	"UNRATE",   // Unemployment Rate
	"CPIAUCSL", // Consumer Price Index
	"FEDFUNDS", // Federal Funds Rate
	"GS10",     // 10-Year Treasury
	"GS2",      // 2-Year Treasury
	"T10Y2Y",   // 10Y-2Y Spread
	"SP500",    // S&P 500
	"VIXCLS",   // VIX Volatility
	"M2SL",     // M2 Money Supply
	"DTWEXBGS", // Trade Weighted US Dollar
	"HOUST",    // Housing Starts
	"RSAFS",    // Retail Sales
	"INDPRO",   // Industrial Production
	"PAYEMS",   // Nonfarm Payrolls
}

// indicatorNames maps series IDs to display names.
var indicatorNames = map[string]string{
	"GDP":      "Gross Domestic Product",
	"UNRATE":   "Unemployment Rate",
	"CPIAUCSL": "Consumer Price Index",
	"FEDFUNDS": "Federal Funds Rate",
	"GS10":     "10-Year Treasury Yield",
	"GS2":      "2-Year Treasury Yield",
	"T10Y2Y":   "10Y-2Y Treasury Spread",
	"SP500":    "S&P 500",
	"VIXCLS":   "VIX Volatility Index",
	"M2SL":     "M2 Money Supply",
	"DTWEXBGS": "Trade Weighted US Dollar Index",
	"HOUST":    "Housing Starts",
	"RSAFS":    "Retail Sales",
	"INDPRO":   "Industrial Production",
	"PAYEMS":   "Nonfarm Payrolls",
}

// observationLookback bounds how far back the latest-value scan walks before
// declaring the primary series absent. Daily series publish placeholders over
// weekends and holidays.
const observationLookback = 13

// Indicators fetches the latest observation for each series under the batch
// scheduler. Per-series failures leave that series' value nil; declared
// substitutes are consulted when the primary yields nothing.
func (s *Service) Indicators(ctx context.Context, seriesIDs []string) ([]model.IndicatorRow, error) {
	if s.fred == nil {
		return nil, ErrMissingCredential
	}
	if len(seriesIDs) == 0 {
		seriesIDs = DefaultIndicators
	}

	ids := make([]string, 0, len(seriesIDs))
	seen := make(map[string]bool, len(seriesIDs))
	for _, id := range seriesIDs {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, eris.New("pipeline: at least one series id is required")
	}

	results := batch.Run(ctx, ids, s.indicatorWorker, batch.Options{
		Concurrency:     s.opts.BatchConcurrency,
		InterBatchDelay: s.opts.InterBatchDelay,
		Limiter:         s.opts.APILimiter,
	})

	rows := make([]model.IndicatorRow, 0, len(ids))
	usable := 0
	for _, id := range ids {
		res := results[id]
		if !res.OK() {
			rows = append(rows, model.IndicatorRow{
				SeriesID:  id,
				Name:      indicatorNames[id],
				Source:    "fred:" + id,
				FetchDate: s.now(),
			})
			continue
		}
		rows = append(rows, res.Value)
		if res.Value.Value != nil {
			usable++
		}
	}
	if usable == 0 {
		return nil, eris.Wrap(ErrNoData, "indicators")
	}
	return rows, nil
}

// indicatorWorker resolves one series: primary fetch, then the declared
// substitute when the primary yields nothing (unreachable included).
func (s *Service) indicatorWorker(ctx context.Context, id string) (model.IndicatorRow, error) {
	row := model.IndicatorRow{
		SeriesID:  id,
		Name:      indicatorNames[id],
		Source:    "fred:" + id,
		FetchDate: s.now(),
	}

	primary, obsDate, err := s.latestObservation(ctx, id)
	if err != nil {
		zap.L().Warn("indicators: primary series unavailable",
			zap.String("series", id),
			zap.Error(err),
		)
		primary = extract.Absent()
	}

	resolved := primary
	if s.fallback != nil {
		resolved = s.fallback.Resolve(ctx, id, primary, func(ctx context.Context, sub string) (extract.Value, error) {
			v, date, err := s.latestObservation(ctx, sub)
			if err == nil && v.Present {
				obsDate = date
			}
			return v, err
		})
	}

	if v, ok := resolved.Float(); ok {
		row.Value = &v
		row.ObservationDate = obsDate
		row.Substituted = resolved.Source != primary.Source && resolved.Source != ""
		if row.Substituted {
			row.Source = resolved.Source
		}
	}
	return row, nil
}

// latestObservation returns the most recent non-placeholder observation of a
// series. Placeholder values walk further back; a window of nothing but
// placeholders is an absence, not an error.
func (s *Service) latestObservation(ctx context.Context, id string) (extract.Value, string, error) {
	resp, err := s.fred.SeriesObservations(ctx, fred.ObservationsRequest{
		SeriesID: id,
		Limit:    observationLookback,
	})
	if err != nil {
		return extract.Absent(), "", err
	}

	for _, obs := range resp.Observations {
		if obs.Missing() {
			continue
		}
		f, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		return extract.Number(f, obs.Value, "fred:"+id), obs.Date, nil
	}
	return extract.Absent(), "", nil
}
