// Package validate holds the pure input and output validators for the price
// pipeline: request sanitation before anything runs, and the final product
// gate before results leave the process.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sharad-mishra/universal-price-tool/internal/country"
)

const (
	QueryMinLength = 2
	QueryMaxLength = 200
)

// deniedChars guards against injection into the AI prompt and outbound URLs.
var (
	deniedChars = regexp.MustCompile(`[<>;{}]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// Sanitized is the cleaned (country, query) pair produced by a successful
// validation.
type Sanitized struct {
	Country string `json:"country"`
	Query   string `json:"query"`
}

// Result accumulates every violation so the caller can report them all at once.
type Result struct {
	Valid     bool      `json:"isValid"`
	Errors    []string  `json:"errors"`
	Sanitized Sanitized `json:"sanitizedData"`
}

// PriceRequest validates and sanitizes a raw (country, query) pair. It has no
// side effects and performs no I/O.
func PriceRequest(countryCode, query string) Result {
	var errs []string

	upper := strings.ToUpper(strings.TrimSpace(countryCode))
	switch {
	case upper == "":
		errs = append(errs, "country is required")
	case len(upper) != 2:
		errs = append(errs, "country must be a 2-letter ISO code")
	case !country.Supported(upper):
		errs = append(errs, fmt.Sprintf("unsupported country code: %s", upper))
	}

	trimmed := strings.TrimSpace(query)
	switch {
	case trimmed == "":
		errs = append(errs, "query is required")
	case len(trimmed) < QueryMinLength:
		errs = append(errs, fmt.Sprintf("query must be at least %d characters long", QueryMinLength))
	case len(trimmed) > QueryMaxLength:
		errs = append(errs, fmt.Sprintf("query must be at most %d characters long", QueryMaxLength))
	case deniedChars.MatchString(trimmed):
		errs = append(errs, "query contains invalid characters")
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Sanitized: Sanitized{
			Country: upper,
			Query:   SanitizeQuery(query),
		},
	}
}

// SanitizeQuery strips denylisted characters, collapses whitespace runs, and
// truncates to the maximum query length.
func SanitizeQuery(query string) string {
	q := deniedChars.ReplaceAllString(strings.TrimSpace(query), "")
	q = spaceRuns.ReplaceAllString(q, " ")
	if len(q) > QueryMaxLength {
		cut := QueryMaxLength
		// back up to a rune boundary so truncation never splits a multi-byte rune
		for cut > 0 && !utf8.RuneStart(q[cut]) {
			cut--
		}
		q = q[:cut]
	}
	return strings.TrimSpace(q)
}

// IsValidURL reports whether s parses as an absolute http(s) URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
