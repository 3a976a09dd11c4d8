// Package active classifies club interactions as recently active from their
// free-text month labels.
package active

import (
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ParseMonthLabel parses labels of the shape "March 2023": a leading full
// English month name (case-insensitive) and a trailing four-digit year.
// Anything else, including the literal "Unknown", does not parse.
func ParseMonthLabel(label string) (time.Month, int, bool) {
	fields := strings.Fields(label)
	if len(fields) < 2 {
		return 0, 0, false
	}

	month, ok := months[strings.ToLower(fields[0])]
	if !ok {
		return 0, 0, false
	}

	last := fields[len(fields)-1]
	if len(last) != 4 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(last)
	if err != nil {
		return 0, 0, false
	}

	return month, year, true
}

// InWindow reports whether a month label falls inside the rolling
// three-calendar-month window: now's month and the two preceding it.
// Unparseable labels are never active.
func InWindow(label string, now time.Time) bool {
	month, year, ok := ParseMonthLabel(label)
	if !ok {
		return false
	}

	ref := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)

	return !ref.Before(cutoff)
}
