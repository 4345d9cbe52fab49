package country

import "sort"

// Info holds the per-country settings the pipeline depends on: the currency
// every emitted price must be expressed in, and the language hint passed to
// the shopping-search provider.
type Info struct {
	Currency string
	Language string
}

var registry = map[string]Info{
	"US": {Currency: "USD", Language: "en"},
	"IN": {Currency: "INR", Language: "en"},
	"GB": {Currency: "GBP", Language: "en"},
	"DE": {Currency: "EUR", Language: "de"},
	"FR": {Currency: "EUR", Language: "fr"},
	"JP": {Currency: "JPY", Language: "ja"},
	"CN": {Currency: "CNY", Language: "zh-cn"},
	"BR": {Currency: "BRL", Language: "pt"},
	"RU": {Currency: "RUB", Language: "ru"},
	"AU": {Currency: "AUD", Language: "en"},
	"CA": {Currency: "CAD", Language: "en"},
	"MX": {Currency: "MXN", Language: "es"},
	"KR": {Currency: "KRW", Language: "ko"},
	"IT": {Currency: "EUR", Language: "it"},
	"ES": {Currency: "EUR", Language: "es"},
}

// Lookup returns the Info for an upper-case 2-letter code.
func Lookup(code string) (Info, bool) {
	info, ok := registry[code]
	return info, ok
}

// Supported reports whether the code belongs to the supported-country set.
func Supported(code string) bool {
	_, ok := registry[code]
	return ok
}

// Currency returns the ISO-4217 currency bound to the country, or "USD" when
// the code is unknown.
func Currency(code string) string {
	if info, ok := registry[code]; ok {
		return info.Currency
	}
	return "USD"
}

// Codes returns the supported country codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for c := range registry {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
