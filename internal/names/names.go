// Package names normalizes administrative place names so that variants coming
// from the geocoder, the gazetteer and the pricing feed compare equal.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MetroManila is the canonical province name every NCR synonym maps to.
const MetroManila = "Metro Manila"

var leadingHonorifics = [][]string{
	{"barangay"},
	{"brgy"},
	{"bgy"},
	{"city", "of"},
	{"municipality", "of"},
	{"province", "of"},
}

var trailingHonorifics = map[string]bool{
	"city":     true,
	"province": true,
	"region":   true,
	"barangay": true,
}

// Normalize lowercases s, strips diacritics and punctuation, collapses
// whitespace and drops honorific prefixes/suffixes such as "City of",
// "Brgy." or "Province". The result is only meant for comparison.
func Normalize(s string) string {
	s = stripDiacritics(strings.ToLower(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(trimHonorifics(strings.Fields(s)), " ")
}

// IsNCR reports whether a normalized name is one of the National Capital
// Region synonyms.
func IsNCR(normalized string) bool {
	if normalized == "" {
		return false
	}
	if normalized == Normalize(MetroManila) || strings.Contains(normalized, "national capital") {
		return true
	}
	for _, f := range strings.Fields(normalized) {
		if f == "ncr" {
			return true
		}
	}
	return false
}

// Canonical normalizes s and folds every NCR synonym into the normalized
// form of MetroManila.
func Canonical(s string) string {
	n := Normalize(s)
	if IsNCR(n) {
		return Normalize(MetroManila)
	}
	return n
}

// Matches reports whether two normalized names are equal or one contains the
// other. Empty names never match.
func Matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func trimHonorifics(fields []string) []string {
	for {
		trimmed := false
		for _, prefix := range leadingHonorifics {
			if len(fields) > len(prefix) && hasPrefix(fields, prefix) {
				fields = fields[len(prefix):]
				trimmed = true
			}
		}
		if len(fields) > 1 && trailingHonorifics[fields[len(fields)-1]] {
			fields = fields[:len(fields)-1]
			trimmed = true
		}
		if !trimmed {
			return fields
		}
	}
}

func hasPrefix(fields, prefix []string) bool {
	for i, p := range prefix {
		if fields[i] != p {
			return false
		}
	}
	return true
}
