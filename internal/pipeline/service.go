// Package pipeline orchestrates the extraction flow: source fetches, embedded
// value extraction, fallback resolution, batched multi-key scheduling, and
// vintage comparison, normalized into canonical rows.
//
// Error contract: operations raise only for precondition violations (invalid
// argument, missing credential) or when nothing usable could be produced.
// Sparse results pass through; per-field and per-item misses are absences,
// not errors.
package pipeline

import (
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/meridian-group/market-cli/internal/fallback"
	"github.com/meridian-group/market-cli/internal/fetcher"
	"github.com/meridian-group/market-cli/pkg/fred"
)

// Sentinel errors surfaced across the pipeline boundary.
var (
	// ErrNoData means the request was valid but no source yielded anything
	// usable.
	ErrNoData = eris.New("pipeline: no usable data extracted")

	// ErrMissingCredential means the statistical API credential is not
	// configured. Raised before any I/O.
	ErrMissingCredential = eris.New("pipeline: statistical API key not configured")
)

// Options tunes the pipeline.
type Options struct {
	// MarketBaseURL is the finance site root, e.g. https://finance.yahoo.com.
	MarketBaseURL string
	// MarketTimeout bounds each page fetch.
	MarketTimeout time.Duration
	// BatchConcurrency is the group size for multi-key operations.
	BatchConcurrency int
	// InterBatchDelay separates consecutive groups.
	InterBatchDelay time.Duration
	// APILimiter paces statistical API calls across a whole batched run.
	APILimiter *rate.Limiter
	// PlausibilityRatio is passed through to the extractor.
	PlausibilityRatio float64
}

// Service is the pipeline entry point handed to the CLI layer.
type Service struct {
	fetch    fetcher.Client
	fred     fred.Client // nil when no API key is configured
	fallback *fallback.Coordinator
	opts     Options
	now      func() time.Time // injectable for testing
}

// New creates a pipeline service. fredClient may be nil; operations that need
// it fail with ErrMissingCredential before any I/O.
func New(fetch fetcher.Client, fredClient fred.Client, fb *fallback.Coordinator, opts Options) *Service {
	if opts.MarketBaseURL == "" {
		opts.MarketBaseURL = "https://finance.yahoo.com"
	}
	if opts.MarketTimeout == 0 {
		opts.MarketTimeout = 12 * time.Second
	}
	if opts.BatchConcurrency == 0 {
		opts.BatchConcurrency = 5
	}
	if opts.InterBatchDelay == 0 {
		opts.InterBatchDelay = 1500 * time.Millisecond
	}
	return &Service{
		fetch:    fetch,
		fred:     fredClient,
		fallback: fb,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithNow sets a fixed clock for testing.
func (s *Service) WithNow(t time.Time) *Service {
	s.now = func() time.Time { return t }
	return s
}
