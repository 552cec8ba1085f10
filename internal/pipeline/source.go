package pipeline

import (
	"net/url"

	"github.com/meridian-group/market-cli/internal/fetcher"
)

// pageHeaders are the browser-shaped headers the finance site expects.
// The User-Agent identity string is set by the fetcher itself.
var pageHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// quotePage describes the quote/statistics page for one symbol.
func (s *Service) quotePage(symbol string) fetcher.Descriptor {
	return fetcher.Descriptor{
		ID:      "quote-page:" + symbol,
		URL:     s.opts.MarketBaseURL + "/quote/" + url.PathEscape(symbol),
		Headers: pageHeaders,
		Timeout: s.opts.MarketTimeout,
	}
}

// screenerPage describes a predefined screener page, e.g. "day_gainers".
func (s *Service) screenerPage(screenID string) fetcher.Descriptor {
	return fetcher.Descriptor{
		ID:      "screener-page:" + screenID,
		URL:     s.opts.MarketBaseURL + "/screener/predefined/" + url.PathEscape(screenID),
		Headers: pageHeaders,
		Timeout: s.opts.MarketTimeout,
	}
}
