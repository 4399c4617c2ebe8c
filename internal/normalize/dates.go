package normalize

import (
	"strings"
	"time"
)

// Common date formats found on hospital bills and in extraction output.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"01/02/06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// NormalizeDate canonicalizes a date-of-service string to YYYY-MM-DD, or ""
// when unparseable. All unparseable dates collapse into the same empty
// bucket; date-keyed grouping excludes such lines rather than matching them
// against each other.
func NormalizeDate(s string) string {
	t := ParseDate(s)
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
