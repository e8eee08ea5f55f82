package model

import "time"

// DateLayout is the normalized calendar-day format used everywhere a
// view compares dates.
const DateLayout = "2006-01-02"

// dateFormats are the shapes the backend has been seen to send.
var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateLayout,
}

// ParseTimestamp parses a server timestamp, returning the zero time
// when the field is missing or unrecognizable. Transforms never fail
// on a bad date.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

// NormalizeDate reduces a server timestamp to a YYYY-MM-DD string, or
// "" when the field is missing or unrecognizable.
func NormalizeDate(s string) string {
	t := ParseTimestamp(s)
	if t.IsZero() {
		return ""
	}

	return t.Format(DateLayout)
}

// Today returns now's calendar day as a YYYY-MM-DD string.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
