package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbols(t *testing.T) {
	body := []byte(`{\"symbol\":\"NVDA\"} {\"symbol\":\"AMD\"} {"symbol":"TSM"} {\"symbol\":\"NVDA\"} {\"symbol\":\"BRK.B\"}`)
	assert.Equal(t, []string{"NVDA", "AMD", "TSM", "BRK.B"}, Symbols(body, 0))
}

func TestSymbolsLimit(t *testing.T) {
	body := []byte(`{\"symbol\":\"A\"} {\"symbol\":\"B\"} {\"symbol\":\"C\"}`)
	assert.Equal(t, []string{"A", "B"}, Symbols(body, 2))
}

func TestSymbolsNone(t *testing.T) {
	assert.Empty(t, Symbols([]byte("<html>nothing here</html>"), 10))
}
