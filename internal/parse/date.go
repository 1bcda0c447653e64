package parse

import (
	"strings"
	"time"
)

// transactionDateFormats are tried in order before the generic fallback.
var transactionDateFormats = []string{
	"01/02/06",
	"01/02/2006",
	"1/2/06",
	"1/2/2006",
	"2006-01-02",
}

// genericDateFormats cover the looser formats seen in scraped cells.
var genericDateFormats = []string{
	"Jan 02 2006",
	"Jan 2 2006",
	"Jan 02, 2006",
	"Jan 2, 2006",
	"Jan 02",
	"Jan 2",
	"02 Jan 2006",
	time.RFC3339,
}

// TransactionDate parses a heterogeneous date string from an insider or
// options table cell. Tries MM/DD/YY(YY) first, then ISO, then a set of
// generic layouts. A date without a year assumes the current year. If
// nothing matches, the Unix epoch is returned as a sentinel: epoch-dated
// rows fall outside any recency-filtered window.
func TransactionDate(text string) time.Time {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Unix(0, 0).UTC()
	}

	for _, layout := range transactionDateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			// Reference-layout rules map two-digit years >= 69 to
			// 19YY; table cells always mean 20YY.
			if !strings.Contains(layout, "2006") && t.Year() < 2000 {
				t = t.AddDate(100, 0, 0)
			}
			return t
		}
	}

	for _, layout := range genericDateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			if t.Year() == 0 {
				now := time.Now()
				t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return t
		}
	}

	return time.Unix(0, 0).UTC()
}
