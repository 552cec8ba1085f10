package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/meridian-group/market-cli/internal/fallback"
	"github.com/meridian-group/market-cli/internal/fetcher"
	"github.com/meridian-group/market-cli/pkg/fred"
)

// mockFetcher serves canned documents keyed by URL substring and counts
// calls so tests can assert on traffic.
type mockFetcher struct {
	mu    sync.Mutex
	pages map[string]string // URL substring -> body
	errs  map[string]error  // URL substring -> error
	calls []string
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		pages: make(map[string]string),
		errs:  make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(_ context.Context, d fetcher.Descriptor) (*fetcher.RawDocument, error) {
	m.mu.Lock()
	m.calls = append(m.calls, d.URL)
	m.mu.Unlock()

	for sub, err := range m.errs {
		if strings.Contains(d.URL, sub) {
			return nil, err
		}
	}
	for sub, body := range m.pages {
		if strings.Contains(d.URL, sub) {
			return &fetcher.RawDocument{
				SourceID:  d.ID,
				Body:      []byte(body),
				FetchedAt: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
			}, nil
		}
	}
	return nil, &fetcher.StatusError{URL: d.URL, StatusCode: 404}
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockFred serves canned observations per series and vintage dates.
type mockFred struct {
	mu           sync.Mutex
	observations map[string][]fred.Observation // key: seriesID or seriesID@realtimeStart
	obsErrs      map[string]error
	vintages     map[string][]string
	vintageErr   error
	calls        []string
}

func newMockFred() *mockFred {
	return &mockFred{
		observations: make(map[string][]fred.Observation),
		obsErrs:      make(map[string]error),
		vintages:     make(map[string][]string),
	}
}

func (m *mockFred) SeriesObservations(_ context.Context, req fred.ObservationsRequest) (*fred.ObservationsResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req.SeriesID)
	m.mu.Unlock()

	if err, ok := m.obsErrs[req.SeriesID]; ok {
		return nil, err
	}
	key := req.SeriesID
	if req.RealtimeStart != "" {
		key = req.SeriesID + "@" + req.RealtimeStart
	}
	obs := m.observations[key]
	return &fred.ObservationsResponse{Count: len(obs), Observations: obs}, nil
}

func (m *mockFred) VintageDates(_ context.Context, seriesID string, _ int) ([]string, error) {
	if m.vintageErr != nil {
		return nil, m.vintageErr
	}
	return m.vintages[seriesID], nil
}

// testService wires a service over mocks with a fixed clock and no pacing.
func testService(fetch fetcher.Client, fredClient fred.Client) *Service {
	table, _ := fallback.ParseTable([]byte(`
series:
  SOFR:
    substitute: EFFR
    note: effective federal funds rate tracks SOFR closely
`))
	return New(fetch, fredClient, fallback.NewCoordinator(table), Options{
		BatchConcurrency: 4,
		InterBatchDelay:  time.Millisecond,
	}).WithNow(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))
}
