package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-group/market-cli/pkg/fred"
)

func TestIndicators(t *testing.T) {
	fc := newMockFred()
	fc.observations["UNRATE"] = []fred.Observation{
		{Date: "2026-07-01", Value: "4.1"},
	}
	fc.observations["GDP"] = []fred.Observation{
		{Date: "2026-04-01", Value: "28302.5"},
	}
	svc := testService(newMockFetcher(), fc)

	rows, err := svc.Indicators(context.Background(), []string{"unrate", "GDP", "UNRATE"})
	require.NoError(t, err)
	require.Len(t, rows, 2, "duplicate series collapse")

	byID := make(map[string]int, len(rows))
	for i, r := range rows {
		byID[r.SeriesID] = i
	}

	un := rows[byID["UNRATE"]]
	require.NotNil(t, un.Value)
	assert.Equal(t, 4.1, *un.Value)
	assert.Equal(t, "2026-07-01", un.ObservationDate)
	assert.Equal(t, "Unemployment Rate", un.Name)
	assert.Equal(t, "fred:UNRATE", un.Source)
	assert.False(t, un.Substituted)
}

func TestIndicatorsPlaceholderWalksBack(t *testing.T) {
	fc := newMockFred()
	fc.observations["VIXCLS"] = []fred.Observation{
		{Date: "2026-08-24", Value: "."},
		{Date: "2026-08-23", Value: "."},
		{Date: "2026-08-22", Value: "14.82"},
	}
	svc := testService(newMockFetcher(), fc)

	rows, err := svc.Indicators(context.Background(), []string{"VIXCLS"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Value)
	assert.Equal(t, 14.82, *rows[0].Value)
	assert.Equal(t, "2026-08-22", rows[0].ObservationDate)
}

func TestIndicatorsFailureIsolation(t *testing.T) {
	fc := newMockFred()
	fc.observations["GDP"] = []fred.Observation{{Date: "2026-04-01", Value: "28302.5"}}
	fc.obsErrs["UNRATE"] = eris.New("upstream 500")
	svc := testService(newMockFetcher(), fc)

	rows, err := svc.Indicators(context.Background(), []string{"GDP", "UNRATE"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, row := range rows {
		switch row.SeriesID {
		case "GDP":
			require.NotNil(t, row.Value)
			assert.Equal(t, 28302.5, *row.Value)
		case "UNRATE":
			assert.Nil(t, row.Value, "a failed series stays absent, never zero")
		}
	}
}

func TestIndicatorsSubstitute(t *testing.T) {
	fc := newMockFred()
	// SOFR yields nothing; the declared substitute EFFR answers.
	fc.obsErrs["SOFR"] = eris.New("series unavailable")
	fc.observations["EFFR"] = []fred.Observation{{Date: "2026-08-25", Value: "4.33"}}
	svc := testService(newMockFetcher(), fc)

	rows, err := svc.Indicators(context.Background(), []string{"SOFR"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "SOFR", row.SeriesID)
	require.NotNil(t, row.Value)
	assert.Equal(t, 4.33, *row.Value)
	assert.True(t, row.Substituted)
	assert.Equal(t, "fred:EFFR", row.Source)
	assert.Equal(t, "2026-08-25", row.ObservationDate)
}

func TestIndicatorsAllFail(t *testing.T) {
	fc := newMockFred()
	fc.obsErrs["GDP"] = eris.New("down")
	fc.obsErrs["UNRATE"] = eris.New("down")
	svc := testService(newMockFetcher(), fc)

	_, err := svc.Indicators(context.Background(), []string{"GDP", "UNRATE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestIndicatorsMissingCredential(t *testing.T) {
	svc := testService(newMockFetcher(), nil)
	_, err := svc.Indicators(context.Background(), []string{"GDP"})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestIndicatorsDefaultSet(t *testing.T) {
	fc := newMockFred()
	for _, id := range DefaultIndicators {
		fc.observations[id] = []fred.Observation{{Date: "2026-08-01", Value: "1.0"}}
	}
	svc := testService(newMockFetcher(), fc)

	rows, err := svc.Indicators(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, rows, len(DefaultIndicators))
	for _, row := range rows {
		assert.NotEmpty(t, row.Name, "series %s needs a display name", row.SeriesID)
	}
}
