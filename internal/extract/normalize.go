package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxNameLength    = 200
	defaultRelevance = 0.5
)

var (
	nonPriceChars = regexp.MustCompile(`[^0-9.]`)
	unsafeChars   = regexp.MustCompile(`[^\w\s\-().,]`)
	promoTerms    = regexp.MustCompile(`(?i)\b(sale|discount|free shipping|offer|deal|special|refurbished|used)\b`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// CleanPrice strips everything but digits and the decimal separator, parses
// the remainder, and formats it as a fixed two-decimal string. Returns false
// for unparsable or non-positive values.
func CleanPrice(raw string) (string, bool) {
	cleaned := nonPriceChars.ReplaceAllString(raw, "")
	// tolerate thousands formats that leave multiple separators ("1.299.00")
	if parts := strings.Split(cleaned, "."); len(parts) > 2 {
		cleaned = parts[0] + "." + parts[1]
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', 2, 64), true
}

// CleanProductName collapses whitespace, strips characters outside the safe
// set, removes promotional terms, and caps the length.
func CleanProductName(name string) string {
	n := whitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	n = unsafeChars.ReplaceAllString(n, "")
	n = promoTerms.ReplaceAllString(n, "")
	n = strings.TrimSpace(whitespace.ReplaceAllString(n, " "))
	if len(n) > maxNameLength {
		n = n[:maxNameLength]
	}
	return n
}

// clampRelevance returns the score when it is already in [0,1], and the
// default otherwise.
func clampRelevance(score *float64) float64 {
	if score == nil || *score < 0 || *score > 1 {
		return defaultRelevance
	}
	return *score
}
