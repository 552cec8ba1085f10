// Package fred is a minimal client for the FRED series API, covering the
// observation and vintage-date endpoints the pipeline consumes.
package fred

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://api.stlouisfed.org/fred"

	// PlaceholderValue marks a missing observation on the wire. The API
	// publishes this literal string, not null.
	PlaceholderValue = "."
)

// Client reads series data from the statistical API.
type Client interface {
	// SeriesObservations returns observations for one series, optionally
	// restricted to a realtime (as-of) window.
	SeriesObservations(ctx context.Context, req ObservationsRequest) (*ObservationsResponse, error)

	// VintageDates returns the publication dates on which the series was
	// revised, most recent first.
	VintageDates(ctx context.Context, seriesID string, limit int) ([]string, error)
}

// ObservationsRequest parameterizes an observations query.
type ObservationsRequest struct {
	SeriesID string
	// Limit caps the number of observations. Zero means the API default.
	Limit int
	// SortOrder is "asc" or "desc". Empty means "desc" (most recent first).
	SortOrder string
	// RealtimeStart/RealtimeEnd select an as-of window; both set to the same
	// vintage date reproduce the series exactly as published on that date.
	RealtimeStart string
	RealtimeEnd   string
}

// AsOf builds a request that reproduces the series exactly as published on
// one vintage date.
func AsOf(seriesID, date string, limit int) ObservationsRequest {
	return ObservationsRequest{
		SeriesID:      seriesID,
		Limit:         limit,
		RealtimeStart: date,
		RealtimeEnd:   date,
	}
}

// Observation is one dated value as published. Missing values carry
// PlaceholderValue in Value.
type Observation struct {
	Date          string `json:"date"`
	Value         string `json:"value"`
	RealtimeStart string `json:"realtime_start"`
	RealtimeEnd   string `json:"realtime_end"`
}

// Missing reports whether the upstream published this observation as absent.
func (o Observation) Missing() bool {
	return o.Value == PlaceholderValue || o.Value == ""
}

// ObservationsResponse is the observations endpoint payload.
type ObservationsResponse struct {
	Count        int           `json:"count"`
	Observations []Observation `json:"observations"`
}

type vintageDatesResponse struct {
	VintageDates []string `json:"vintage_dates"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.rest.SetBaseURL(url)
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.rest.SetTimeout(d)
	}
}

type httpClient struct {
	apiKey string
	rest   *resty.Client
}

// NewClient creates a FRED API client. The key is required by every
// endpoint; calls fail before any I/O when it is empty.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey: apiKey,
		rest: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(10 * time.Second),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SeriesObservations(ctx context.Context, req ObservationsRequest) (*ObservationsResponse, error) {
	if c.apiKey == "" {
		return nil, eris.New("fred: api key required")
	}
	if req.SeriesID == "" {
		return nil, eris.New("fred: series id required")
	}

	params := map[string]string{
		"series_id":  req.SeriesID,
		"api_key":    c.apiKey,
		"file_type":  "json",
		"sort_order": req.SortOrder,
	}
	if req.SortOrder == "" {
		params["sort_order"] = "desc"
	}
	if req.Limit > 0 {
		params["limit"] = strconv.Itoa(req.Limit)
	}
	if req.RealtimeStart != "" {
		params["realtime_start"] = req.RealtimeStart
	}
	if req.RealtimeEnd != "" {
		params["realtime_end"] = req.RealtimeEnd
	}

	var out ObservationsResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		Get("/series/observations")
	if err != nil {
		return nil, eris.Wrap(err, "fred: series observations")
	}
	if resp.IsError() {
		return nil, eris.Errorf("fred: series observations: status %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}
	return &out, nil
}

func (c *httpClient) VintageDates(ctx context.Context, seriesID string, limit int) ([]string, error) {
	if c.apiKey == "" {
		return nil, eris.New("fred: api key required")
	}
	if seriesID == "" {
		return nil, eris.New("fred: series id required")
	}

	params := map[string]string{
		"series_id":  seriesID,
		"api_key":    c.apiKey,
		"file_type":  "json",
		"sort_order": "desc",
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var out vintageDatesResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		Get("/series/vintagedates")
	if err != nil {
		return nil, eris.Wrap(err, "fred: vintage dates")
	}
	if resp.IsError() {
		return nil, eris.Errorf("fred: vintage dates: status %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}
	return out.VintageDates, nil
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
