// ABOUTME: Romanian date string parsing for episode title dates
// ABOUTME: Converts strings like "23 Septembrie" to calendar dates
package rodate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"ianuarie":   time.January,
	"februarie":  time.February,
	"martie":     time.March,
	"aprilie":    time.April,
	"mai":        time.May,
	"iunie":      time.June,
	"iulie":      time.July,
	"august":     time.August,
	"septembrie": time.September,
	"octombrie":  time.October,
	"noiembrie":  time.November,
	"decembrie":  time.December,
}

// aliases maps misspellings that occur in real episode titles.
var aliases = map[string]string{
	"ocrombrie": "octombrie",
}

// Parse converts a Romanian date string like "23 Septembrie" to a date in
// the given year.
func Parse(s string, year int) (time.Time, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("date %q: want \"<day> <month>\"", s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: invalid day: %w", s, err)
	}

	name := strings.ToLower(parts[1])
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	month, ok := months[name]
	if !ok {
		return time.Time{}, fmt.Errorf("date %q: unknown month %q", s, parts[1])
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (e.g. 31 Februarie becomes
	// early March), which would silently accept a bad title date.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, fmt.Errorf("date %q: day %d out of range for %s", s, day, parts[1])
	}
	return t, nil
}
