// Package calendar handles day-granularity dates. Work logs and attendance
// are keyed by ISO day ("2006-01-02"); timestamps arriving from clients are
// reduced to their UTC day before any comparison.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/siteledger/internal/domain/faults"
)

// Layout is the ISO day format used for every stored and compared date.
const Layout = "2006-01-02"

// ErrInvalidDate indicates a blank or unparseable date.
var ErrInvalidDate = fmt.Errorf("%w: invalid date", faults.ErrValidation)

var layouts = []string{
	Layout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Normalize reduces an ISO day or timestamp to its UTC calendar day.
func Normalize(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", ErrInvalidDate
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.UTC().Format(Layout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// Day formats t as an ISO day in t's own location.
func Day(t time.Time) string {
	return t.Format(Layout)
}

// WeekRange returns the Sunday-to-Saturday week containing now, from
// Sunday 00:00 to the last nanosecond of Saturday, in now's location.
func WeekRange(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// InWeek reports whether day falls within the current Sun-Sat week of now.
// Unparseable days are never in the week.
func InWeek(day string, now time.Time) bool {
	normalized, err := Normalize(day)
	if err != nil {
		return false
	}
	d, err := time.ParseInLocation(Layout, normalized, now.Location())
	if err != nil {
		return false
	}
	start, end := WeekRange(now)
	return !d.Before(start) && !d.After(end)
}
