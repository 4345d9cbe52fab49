package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	info, ok := Lookup("US")
	assert.True(t, ok)
	assert.Equal(t, "USD", info.Currency)
	assert.Equal(t, "en", info.Language)

	_, ok = Lookup("ZZ")
	assert.False(t, ok)

	// lookups are case sensitive: callers pass sanitized upper-case codes
	_, ok = Lookup("us")
	assert.False(t, ok)
}

func TestCurrencyFallback(t *testing.T) {
	assert.Equal(t, "EUR", Currency("DE"))
	assert.Equal(t, "USD", Currency("ZZ"))
}

func TestCodesSorted(t *testing.T) {
	codes := Codes()
	assert.Len(t, codes, 15)
	for i := 1; i < len(codes); i++ {
		assert.Less(t, codes[i-1], codes[i])
	}
	assert.Contains(t, codes, "JP")
}
