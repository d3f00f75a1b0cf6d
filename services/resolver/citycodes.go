// File: services/resolver/citycodes.go
package resolver

import (
	"regexp"
	"sort"
	"strings"
)

// CityCodes is an immutable city-name to IATA-code mapping, injected into
// the hotel resolver so tests can substitute it and operators can extend it
// without touching resolver logic.
type CityCodes map[string]string

var iataPattern = regexp.MustCompile(`\b([A-Z]{3})\b`)

// Resolve maps a free-form location string to a city code. Table keys match
// case-insensitively as substrings of the location; ties go to the first key
// in sorted order. When no key matches, an embedded 3-uppercase-letter token
// is accepted as a code directly.
func (c CityCodes) Resolve(location string) (string, bool) {
	normalized := strings.ToLower(location)

	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, city := range keys {
		if strings.Contains(normalized, city) {
			return c[city], true
		}
	}

	if m := iataPattern.FindStringSubmatch(location); m != nil {
		return m[1], true
	}
	return "", false
}

// DefaultCityCodes returns the built-in city table.
func DefaultCityCodes() CityCodes {
	return CityCodes{
		"paris":         "PAR",
		"london":        "LON",
		"new york":      "NYC",
		"tokyo":         "TYO",
		"los angeles":   "LAX",
		"san francisco": "SFO",
		"chicago":       "CHI",
		"miami":         "MIA",
		"dubai":         "DXB",
		"singapore":     "SIN",
		"hong kong":     "HKG",
		"barcelona":     "BCN",
		"rome":          "ROM",
		"amsterdam":     "AMS",
		"berlin":        "BER",
		"madrid":        "MAD",
		"sydney":        "SYD",
		"melbourne":     "MEL",
		"bangkok":       "BKK",
		"istanbul":      "IST",
	}
}
