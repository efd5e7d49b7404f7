package types

import (
	"time"
)

// AddClampedDate adds years, months and days to t. Unlike time.AddDate the
// day of month is clamped to the last valid day of the target month instead
// of overflowing, so Jan 31 + 1 month is Feb 29 in a leap year.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	// adding 2 months to November lands on January next year
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	lastDay := DaysIn(newY, newM, t.Location())
	if d > lastDay {
		d = lastDay
	}

	// days are applied after the month clamp and may roll into the next month
	return time.Date(newY, newM, d+days, h, min, sec, t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
