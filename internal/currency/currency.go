package currency

import (
	"sort"
	"strings"
)

// DefaultBaseCurrency is the currency every stored expense is normalized to
// unless the deployment overrides it.
const DefaultBaseCurrency = "INR"

// supported is the fixed set of currencies the ledger accepts.
var supported = map[string]struct{}{
	"INR": {}, "AED": {}, "CAD": {}, "EUR": {}, "MYR": {},
	"SEK": {}, "USD": {}, "AUD": {}, "CHF": {}, "GBP": {},
	"JPY": {}, "PHP": {}, "SGD": {}, "ZAR": {}, "BRL": {},
	"CNY": {}, "HKD": {}, "MXN": {}, "SAR": {}, "THB": {},
}

// Normalize upper-cases a currency code and reports whether it is one of
// the supported codes.
func Normalize(code string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	_, ok := supported[normalized]
	return normalized, ok
}

func IsSupported(code string) bool {
	_, ok := Normalize(code)
	return ok
}

// Codes returns the supported currency codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(supported))
	for code := range supported {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
