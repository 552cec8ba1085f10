package pipeline

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-group/market-cli/internal/model"
	"github.com/meridian-group/market-cli/internal/vintage"
	"github.com/meridian-group/market-cli/pkg/fred"
)

// vintageObservationLimit bounds how many observations each as-of snapshot
// carries. The revision comparison only needs the recent tail.
const vintageObservationLimit = 24

// Revisions compares the two most recent vintages of a series and reports
// the revision of the latest comparable observation. A series with fewer
// than two vintages, or no comparable observation, yields a row with
// HasRevisions=false and an explanatory note — not an error.
func (s *Service) Revisions(ctx context.Context, seriesID string) (*model.RevisionRow, error) {
	if s.fred == nil {
		return nil, ErrMissingCredential
	}
	seriesID = strings.ToUpper(strings.TrimSpace(seriesID))
	if seriesID == "" {
		return nil, eris.New("pipeline: series id is required")
	}

	dates, err := s.fred.VintageDates(ctx, seriesID, 2)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: revisions %s", seriesID)
	}
	if len(dates) < 2 {
		return &model.RevisionRow{
			SeriesID:  seriesID,
			Note:      "fewer than two vintages published; nothing to compare",
			FetchDate: s.now(),
		}, nil
	}

	// Most recent first; fetch each vintage exactly as published on its date.
	vintages := make([]vintage.Vintage, 0, 2)
	for _, d := range dates[:2] {
		v, err := s.vintageAsOf(ctx, seriesID, d)
		if err != nil {
			return nil, eris.Wrapf(err, "pipeline: revisions %s as of %s", seriesID, d)
		}
		vintages = append(vintages, v)
	}

	analysis := vintage.Analyze(vintages)
	zap.L().Debug("revisions: analyzed",
		zap.String("series", seriesID),
		zap.Bool("has_revisions", analysis.HasRevisions),
	)

	row := model.RevisionRow{
		SeriesID:     seriesID,
		HasRevisions: analysis.HasRevisions,
		Note:         analysis.Note,
		FetchDate:    s.now(),
	}
	if analysis.HasRevisions {
		row.ObservationDate = analysis.ObservationDate
		row.PreviousValue = model.Float(analysis.PreviousValue)
		row.LatestValue = model.Float(analysis.LatestValue)
		row.Delta = model.Float(analysis.Delta)
		row.DeltaPercent = model.Float(analysis.DeltaPercent)
		row.Magnitude = analysis.Magnitude
		row.Trend = analysis.Trend
		row.VintagePrevious = analysis.VintagePrevious
		row.VintageLatest = analysis.VintageLatest
	}
	return &row, nil
}

// vintageAsOf rebuilds the series exactly as published on one vintage date.
// Placeholder observations become nil values, preserving the observation
// date for matching.
func (s *Service) vintageAsOf(ctx context.Context, seriesID, date string) (vintage.Vintage, error) {
	resp, err := s.fred.SeriesObservations(ctx, fred.AsOf(seriesID, date, vintageObservationLimit))
	if err != nil {
		return vintage.Vintage{}, err
	}

	v := vintage.Vintage{Date: date}
	for _, obs := range resp.Observations {
		o := vintage.Observation{Date: obs.Date}
		if !obs.Missing() {
			if f, err := strconv.ParseFloat(obs.Value, 64); err == nil {
				o.Value = &f
			}
		}
		v.Observations = append(v.Observations, o)
	}
	return v, nil
}
