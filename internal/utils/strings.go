package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePlace lowercases and squeezes a place name for lookups and
// similarity scoring.
func NormalizePlace(s string) string {
	return strings.ToLower(NormalizeSpace(s))
}

// CleanSeatCodes trims, uppercases and dedupes seat codes, dropping blanks.
func CleanSeatCodes(raw []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, p := range raw {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// SplitSeatList splits comma/semicolon separated seat strings into cleaned slices.
func SplitSeatList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	return CleanSeatCodes(parts)
}
