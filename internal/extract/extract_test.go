package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-group/market-cli/internal/fetcher"
)

func doc(body string) *fetcher.RawDocument {
	return &fetcher.RawDocument{
		SourceID:  "quote-page:TEST",
		Body:      []byte(body),
		FetchedAt: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
	}
}

const quotePageFixture = `<!DOCTYPE html>
<html><head><title>TEST</title></head><body>
<fin-streamer data-field="regularMarketPrice" data-value="193.42">193.42</fin-streamer>
<fin-streamer data-field="regularMarketChange" data-value="1.85">+1.85</fin-streamer>
<fin-streamer data-field="regularMarketChangePercent" data-value="0.97">(+0.97%)</fin-streamer>
<td data-field="marketCap">2.95T</td>
<script>
root.App.main = "{\"quoteSummary\":{\"price\":{\"regularMarketPrice\":{\"raw\":193.40,\"fmt\":\"193.40\"},\"regularMarketVolume\":{\"raw\":52389100,\"fmt\":\"52.39M\"},\"averageDailyVolume3Month\":{\"raw\":58231400,\"fmt\":\"58.23M\"},\"marketCap\":{\"raw\":3000000000000,\"fmt\":\"3.00T\"},\"shortName\":\"Test Corp\"},\"summaryDetail\":{\"trailingPE\":{\"raw\":29.85,\"fmt\":\"29.85\"},\"forwardPE\":{\"raw\":27.10,\"fmt\":\"27.10\"},\"priceToBook\":{\"raw\":45.50,\"fmt\":\"45.50\"},\"epsTrailingTwelveMonths\":{\"raw\":6.48,\"fmt\":\"6.48\"},\"dividendYield\":{\"raw\":0.56,\"fmt\":\"0.56%\"},\"beta\":{\"raw\":1.29,\"fmt\":\"1.29\"},\"fiftyTwoWeekLow\":{\"raw\":164.08,\"fmt\":\"164.08\"},\"fiftyTwoWeekHigh\":{\"raw\":199.62,\"fmt\":\"199.62\"}}}}"
</script>
</body></html>`

func TestExtractQuotePage(t *testing.T) {
	snap := Extract(doc(quotePageFixture), QuoteSignatures(), Options{})
	require.False(t, snap.Empty())

	// DOM price shadows the slightly stale JSON store value.
	price, ok := snap.Float("price")
	require.True(t, ok)
	assert.Equal(t, 193.42, price)

	change, ok := snap.Float("change")
	require.True(t, ok)
	assert.Equal(t, 1.85, change)

	// market_cap resolves through both families; the DOM value 2.95T is
	// plausible against the JSON 3.00T and wins.
	mcap, ok := snap.Float("market_cap")
	require.True(t, ok)
	assert.InEpsilon(t, 2.95e12, mcap, 1e-9)

	pe, ok := snap.Float("trailing_pe")
	require.True(t, ok)
	assert.Equal(t, 29.85, pe)

	vol, ok := snap.Float("volume")
	require.True(t, ok)
	assert.Equal(t, float64(52389100), vol)

	low, ok := snap.Float("week52_low")
	require.True(t, ok)
	assert.Equal(t, 164.08, low)

	name, ok := snap.Get("name")
	require.True(t, ok)
	s, _ := name.Str()
	assert.Equal(t, "Test Corp", s)
}

func TestExtractImplausibleDOMValueRejected(t *testing.T) {
	// The trailing_pe display slot sometimes renders an unrelated metric. A
	// DOM value more than two orders of magnitude below the JSON value must
	// not shadow it.
	body := `
<td data-field="trailingPE">0.02</td>
<script>"{\"trailingPE\":{\"raw\":29.85,\"fmt\":\"29.85\"}}"</script>`
	snap := Extract(doc(body), QuoteSignatures(), Options{})
	pe, ok := snap.Float("trailing_pe")
	require.True(t, ok)
	assert.Equal(t, 29.85, pe)
}

func TestExtractPlausibleDOMValueWins(t *testing.T) {
	body := `
<td data-field="trailingPE">30.10</td>
<script>"{\"trailingPE\":{\"raw\":29.85,\"fmt\":\"29.85\"}}"</script>`
	snap := Extract(doc(body), QuoteSignatures(), Options{})
	pe, ok := snap.Float("trailing_pe")
	require.True(t, ok)
	assert.Equal(t, 30.10, pe)
}

func TestExtractDOMOnlyRatioField(t *testing.T) {
	// No JSON value to compare against: the DOM value stands on its own.
	body := `<td data-field="trailingPE">28.91</td>`
	snap := Extract(doc(body), QuoteSignatures(), Options{})
	pe, ok := snap.Float("trailing_pe")
	require.True(t, ok)
	assert.Equal(t, 28.91, pe)
}

func TestExtractEmptyDocument(t *testing.T) {
	snap := Extract(doc("<html><body>maintenance page</body></html>"), QuoteSignatures(), Options{})
	assert.True(t, snap.Empty())
}

func TestExtractMissingTokensStayAbsent(t *testing.T) {
	body := `
<td data-field="trailingPE">--</td>
<script>"{\"forwardPE\":{\"fmt\":\"N/A\"},\"beta\":{\"raw\":1.29,\"fmt\":\"1.29\"}}"</script>`
	snap := Extract(doc(body), QuoteSignatures(), Options{})

	_, ok := snap.Float("trailing_pe")
	assert.False(t, ok)
	_, ok = snap.Float("forward_pe")
	assert.False(t, ok)
	beta, ok := snap.Float("beta")
	require.True(t, ok)
	assert.Equal(t, 1.29, beta)
}

func TestExtractConflictingDOMSlots(t *testing.T) {
	body := `
<td data-field="regularMarketPrice" data-value="193.42">193.42</td>
<td data-field="regularMarketPrice" data-value="5.00">5.00</td>
<script>"{\"regularMarketPrice\":{\"raw\":193.40,\"fmt\":\"193.40\"}}"</script>`
	snap := Extract(doc(body), QuoteSignatures(), Options{})

	// Conflicting DOM occurrences are a miss; the JSON value stands.
	price, ok := snap.Float("price")
	require.True(t, ok)
	assert.Equal(t, 193.40, price)
}

func TestExtractDeterministicOrder(t *testing.T) {
	snap1 := Extract(doc(quotePageFixture), QuoteSignatures(), Options{})
	snap2 := Extract(doc(quotePageFixture), QuoteSignatures(), Options{})
	assert.Equal(t, snap1.Keys(), snap2.Keys())
}

func TestSnapshotIgnoresAbsent(t *testing.T) {
	snap := NewSnapshot("src", time.Now())
	snap.Set("price", Absent())
	assert.True(t, snap.Empty())
	snap.Set("price", Number(1, "1", "src"))
	assert.Equal(t, 1, snap.Len())
}
