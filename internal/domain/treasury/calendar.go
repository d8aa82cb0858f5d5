package treasury

import "time"

// NormalizeDate truncates a timestamp to its calendar date at UTC midnight.
// All day-matching and days-overdue arithmetic in this package operates on
// normalized dates so that bucketing never shifts across DST or
// serialization boundaries.
func NormalizeDate(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// DaysBetween returns the number of whole calendar days from `from` to `to`.
// Negative when `to` precedes `from`. A partial day counts as a full day
// because both endpoints are normalized first.
func DaysBetween(from, to time.Time) int {
	return int(NormalizeDate(to).Sub(NormalizeDate(from)).Hours() / 24)
}
