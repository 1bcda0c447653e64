// Package parse provides pure text-to-value extraction helpers for
// loosely-formatted financial strings. All functions are stateless,
// perform no I/O, and never return an error: malformed input maps to
// a zero value the caller must tolerate.
package parse

import (
	"strconv"
	"strings"
)

// Number parses a loosely-formatted numeric string ("$1,234", "12.3%",
// "1 234.5") into a float64. Every character other than digits, '.' and
// '-' is stripped before parsing. Returns 0 for empty or non-numeric
// input; a genuine zero and a parse failure are indistinguishable.
func Number(text string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, text)

	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// TransactionValue parses a currency amount with accounting notation.
// "$1,234.50" -> 1234.50, "($500)" -> -500, "-1,000" -> -1000.
// Presence of either '-' or '(' marks the value negative. Returns 0 on
// failure.
func TransactionValue(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	negative := strings.Contains(trimmed, "-") || strings.Contains(trimmed, "(")

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		default:
			return -1
		}
	}, trimmed)

	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if negative {
		return -v
	}
	return v
}
