package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"$999.00", "999.00", true},
		{"A$1,299.00", "1299.00", true},
		{"999", "999.00", true},
		{"₹74,900", "74900.00", true},
		{"1.299.00", "1.30", true},
		{"0.00", "", false},
		{"-5.00", "5.00", true},
		{"free", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanPrice(tt.in)
		assert.Equal(t, tt.ok, ok, "CleanPrice(%q)", tt.in)
		assert.Equal(t, tt.want, got, "CleanPrice(%q)", tt.in)
	}
}

func TestCleanProductName(t *testing.T) {
	assert.Equal(t, "Apple iPhone 16 Pro 128GB -",
		CleanProductName("Apple iPhone 16 Pro 128GB - Sale!"))
	assert.Equal(t, "Dell XPS 13", CleanProductName("  Dell   XPS 13  "))
	assert.Equal(t, "Galaxy S24 (256GB, Black)", CleanProductName("Galaxy S24 (256GB, Black) FREE SHIPPING"))
	assert.NotContains(t, strings.ToLower(CleanProductName("Refurbished MacBook Air deal")), "refurbished")

	long := strings.Repeat("a", 250)
	assert.Len(t, CleanProductName(long), 200)
}

func TestClampRelevance(t *testing.T) {
	v := 0.8
	assert.Equal(t, 0.8, clampRelevance(&v))

	low, high := -0.1, 1.5
	assert.Equal(t, 0.5, clampRelevance(&low))
	assert.Equal(t, 0.5, clampRelevance(&high))
	assert.Equal(t, 0.5, clampRelevance(nil))

	zero, one := 0.0, 1.0
	assert.Equal(t, 0.0, clampRelevance(&zero))
	assert.Equal(t, 1.0, clampRelevance(&one))
}
