package pipeline

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-group/market-cli/internal/extract"
	"github.com/meridian-group/market-cli/internal/model"
)

// Quote fetches the quote/statistics page for one symbol and normalizes it.
// Returns ErrNoData when the page yielded no recognizable field at all; a
// sparse result (some fields nil) is returned as-is.
func (s *Service) Quote(ctx context.Context, symbol string) (*model.QuoteRow, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, eris.New("pipeline: symbol is required")
	}

	log := zap.L().With(
		zap.String("request_id", uuid.NewString()),
		zap.String("symbol", symbol),
	)

	doc, err := s.fetch.Fetch(ctx, s.quotePage(symbol))
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: quote %s", symbol)
	}

	snap := extract.Extract(doc, extract.QuoteSignatures(), extract.Options{
		PlausibilityRatio: s.opts.PlausibilityRatio,
	})
	if snap.Empty() {
		log.Warn("quote: no fields extracted")
		return nil, eris.Wrapf(ErrNoData, "quote %s", symbol)
	}
	log.Debug("quote: extracted", zap.Int("fields", snap.Len()))

	row := s.quoteRow(symbol, snap)
	return &row, nil
}

// quoteRow unwraps a snapshot into a canonical row. Absent fields stay nil.
func (s *Service) quoteRow(symbol string, snap *extract.Snapshot) model.QuoteRow {
	row := model.QuoteRow{
		Symbol:        symbol,
		Price:         floatPtr(snap, "price"),
		Change:        floatPtr(snap, "change"),
		ChangePercent: floatPtr(snap, "change_percent"),
		Volume:        floatPtr(snap, "volume"),
		AvgVolume:     floatPtr(snap, "avg_volume"),
		MarketCap:     floatPtr(snap, "market_cap"),
		TrailingPE:    floatPtr(snap, "trailing_pe"),
		ForwardPE:     floatPtr(snap, "forward_pe"),
		PriceToBook:   floatPtr(snap, "price_to_book"),
		EPS:           floatPtr(snap, "eps"),
		DividendYield: floatPtr(snap, "dividend_yield"),
		Beta:          floatPtr(snap, "beta"),
		Week52Low:     floatPtr(snap, "week52_low"),
		Week52High:    floatPtr(snap, "week52_high"),
		Source:        snap.SourceID,
		FetchDate:     s.now(),
	}
	if v, ok := snap.Get("name"); ok {
		if name, ok := v.Str(); ok {
			row.Name = name
		}
	}
	return row
}

// floatPtr unwraps a numeric snapshot field to a nullable primitive.
func floatPtr(snap *extract.Snapshot, key string) *float64 {
	f, ok := snap.Float(key)
	if !ok {
		return nil
	}
	return &f
}
