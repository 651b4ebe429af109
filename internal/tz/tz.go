// Package tz converts between the storage timezone (UTC) and the fixed
// display timezone of the dispatch operators (UTC+7, no daylight saving).
// The host's local timezone is never consulted.
package tz

import "time"

// DisplayDateLayout is the calendar-day format used by callers of the
// session log (dd.mm.yyyy).
const DisplayDateLayout = "02.01.2006"

var displayZone = time.FixedZone("UTC+7", 7*60*60)

// ToDisplay converts a storage-zone instant to display time.
func ToDisplay(t time.Time) time.Time {
	return t.In(displayZone)
}

// ToStorage interprets wall-clock components as display-local time and
// returns the same instant in storage time.
func ToStorage(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, displayZone).UTC()
}

// DayRange returns the storage-zone bounds of one display-local calendar day,
// first to last second inclusive. Both bounds shift by the fixed offset, so a
// day boundary crossing UTC midnight neither loses nor duplicates rows.
func DayRange(year int, month time.Month, day int) (time.Time, time.Time) {
	return ToStorage(year, month, day, 0, 0, 0), ToStorage(year, month, day, 23, 59, 59)
}

// MonthRange returns the first and last second of a month in storage time.
// Shard rows carry storage-zone timestamps and the monthly window is applied
// in storage time; only day-level session lookups are offset-shifted.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0).Add(-time.Second)
}

// ParseDisplayDate parses a dd.mm.yyyy calendar day as display-local.
func ParseDisplayDate(value string) (time.Time, error) {
	return time.ParseInLocation(DisplayDateLayout, value, displayZone)
}

// Today returns the current calendar day in display time.
func Today() time.Time {
	return time.Now().In(displayZone)
}
