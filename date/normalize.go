package date

import (
	"strings"
	"time"
)

// NasdaqInception is the first trading day of the NASDAQ stock market.
var NasdaqInception = New(1971, time.February, 8)

// normalizeLayouts are tried in order, the first match wins. Day-first layouts
// are tried before month-first ones, so "03/04/2024" is the 3rd of April.
var normalizeLayouts = []string{
	"2006-1-2", // YYYY-MM-DD
	"2/1/2006", // DD/MM/YYYY
	"1/2/2006", // MM/DD/YYYY
	"2006/1/2", // YYYY/MM/DD
	"2-1-2006", // DD-MM-YYYY
	"1-2-2006", // MM-DD-YYYY
	"2006.1.2", // YYYY.MM.DD
}

// Normalize reads a date written in one of the common layouts and returns it
// in canonical form. It returns false when no layout matches; it never panics
// so that callers decide how to react.
func Normalize(raw string) (Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, false
	}
	for _, layout := range normalizeLayouts {
		if on, err := time.Parse(layout, raw); err == nil {
			return New(on.Date()), true
		}
	}
	return Date{}, false
}
