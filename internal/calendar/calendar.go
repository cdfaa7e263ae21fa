// Package calendar holds the calendar-day arithmetic used by the store,
// the filters and the month grid. Every function here is pure.
package calendar

import (
	"fmt"
	"time"
)

// DayLayout is the textual form of a calendar day in config files and flags.
const DayLayout = "2006-01-02"

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Date builds a midnight calendar day in the local zone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// IsSameDay reports whether a and b fall on the same calendar date.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddDays shifts d by n calendar days. n may be negative.
func AddDays(d time.Time, n int) time.Time {
	return StartOfDay(d).AddDate(0, 0, n)
}

// DaysBetweenInclusive counts the calendar days in [start, end].
// It returns a value < 1 when start is after end.
func DaysBetweenInclusive(start, end time.Time) int {
	return dayNumber(end) - dayNumber(start) + 1
}

// dayNumber maps a date to a monotonically increasing day index that
// ignores zone offsets and DST transitions.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(u.Unix() / 86400)
}

// Before reports whether day a is strictly before day b.
func Before(a, b time.Time) bool {
	return dayNumber(a) < dayNumber(b)
}

// Min returns the earlier of two days.
func Min(a, b time.Time) time.Time {
	if Before(b, a) {
		return b
	}
	return a
}

// Max returns the later of two days.
func Max(a, b time.Time) time.Time {
	if Before(a, b) {
		return b
	}
	return a
}

// WithinInterval reports whether d lies in [start, end], inclusive on both ends.
func WithinInterval(d, start, end time.Time) bool {
	n := dayNumber(d)
	return n >= dayNumber(start) && n <= dayNumber(end)
}

// EnumerateDays lists every day from start to end inclusive, ascending.
// The result is nil when start is after end.
func EnumerateDays(start, end time.Time) []time.Time {
	count := DaysBetweenInclusive(start, end)
	if count < 1 {
		return nil
	}
	days := make([]time.Time, 0, count)
	first := StartOfDay(start)
	for i := 0; i < count; i++ {
		days = append(days, first.AddDate(0, 0, i))
	}
	return days
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return first, first.AddDate(0, 1, -1)
}

// GridBounds pads [monthStart, monthEnd] out to whole weeks beginning on
// weekStart, so a month grid always renders complete rows.
func GridBounds(monthStart, monthEnd time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	lead := (int(monthStart.Weekday()) - int(weekStart) + 7) % 7
	trail := (int(weekStart) + 6 - int(monthEnd.Weekday()) + 7) % 7
	return AddDays(monthStart, -lead), AddDays(monthEnd, trail)
}

// FormatMonth renders the month title, e.g. "August 2025".
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}

// ParseDay parses a YYYY-MM-DD string into a local calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t, nil
}
