package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gainersPage = `<html><body><script>
"{\"quotes\":[{\"symbol\":\"NVDA\"},{\"symbol\":\"AMD\"},{\"symbol\":\"NVDA\"},{\"symbol\":\"TSM\"}]}"
</script></body></html>`

func TestScreen(t *testing.T) {
	fetch := newMockFetcher()
	fetch.pages["/screener/predefined/day_gainers"] = gainersPage
	fetch.pages["/quote/NVDA"] = aaplPage
	fetch.pages["/quote/AMD"] = aaplPage
	fetch.pages["/quote/TSM"] = aaplPage
	svc := testService(fetch, nil)

	rows, err := svc.Screen(context.Background(), "day_gainers", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3, "duplicate screener symbols collapse")
	assert.Equal(t, "NVDA", rows[0].Symbol)
	assert.Equal(t, "AMD", rows[1].Symbol)
	assert.Equal(t, "TSM", rows[2].Symbol)
}

func TestScreenLimit(t *testing.T) {
	fetch := newMockFetcher()
	fetch.pages["/screener/predefined/day_gainers"] = gainersPage
	fetch.pages["/quote/NVDA"] = aaplPage
	fetch.pages["/quote/AMD"] = aaplPage
	svc := testService(fetch, nil)

	rows, err := svc.Screen(context.Background(), "day_gainers", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestScreenSkipsFailedQuotes(t *testing.T) {
	fetch := newMockFetcher()
	fetch.pages["/screener/predefined/day_gainers"] = gainersPage
	fetch.pages["/quote/NVDA"] = aaplPage
	// AMD and TSM 404.
	svc := testService(fetch, nil)

	rows, err := svc.Screen(context.Background(), "day_gainers", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "NVDA", rows[0].Symbol)
}

func TestScreenUnknownID(t *testing.T) {
	fetch := newMockFetcher()
	svc := testService(fetch, nil)

	_, err := svc.Screen(context.Background(), "hot_picks", 0)
	require.Error(t, err)
	assert.Zero(t, fetch.callCount(), "unknown screens are rejected before any I/O")
}

func TestScreenNoSymbols(t *testing.T) {
	fetch := newMockFetcher()
	fetch.pages["/screener/predefined/day_losers"] = "<html><body>empty</body></html>"
	svc := testService(fetch, nil)

	_, err := svc.Screen(context.Background(), "day_losers", 0)
	assert.ErrorIs(t, err, ErrNoData)
}
