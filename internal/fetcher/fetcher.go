// Package fetcher issues single outbound requests to upstream data sources.
//
// A fetch is one network call: no retries, no caching. Callers own retry and
// fallback policy; any error returned here means "source unavailable" for that
// call and nothing more.
package fetcher

import (
	"context"
	"time"
)

// Descriptor identifies one upstream request.
type Descriptor struct {
	// ID names the source for snapshots and logs, e.g. "quote-page:AAPL".
	ID string
	// URL is the fully built request URL, query included.
	URL string
	// Headers are source-specific headers (identity string included).
	Headers map[string]string
	// Timeout bounds this call only. Zero means the client default.
	Timeout time.Duration
}

// RawDocument is the unparsed body of a successful fetch.
type RawDocument struct {
	SourceID  string
	Body      []byte
	FetchedAt time.Time
}

// Client fetches raw documents from upstream sources.
type Client interface {
	Fetch(ctx context.Context, d Descriptor) (*RawDocument, error)
}
