// Package common provides shared utilities across the application.
package common

import (
	"fmt"
	"regexp"
	"strings"
)

// tickerPattern matches US exchange symbols: 1-5 letters with an optional
// class suffix ("BRK.B", "BF-B").
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}([.-][A-Z])?$`)

// NormalizeTicker trims, uppercases and validates a ticker symbol.
// Returns an error for empty or malformed input so tool handlers can
// reject bad arguments before any network fetch.
func NormalizeTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return "", fmt.Errorf("ticker is required")
	}
	if !tickerPattern.MatchString(ticker) {
		return "", fmt.Errorf("invalid ticker %q", raw)
	}
	return ticker, nil
}
