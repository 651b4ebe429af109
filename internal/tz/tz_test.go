package tz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplay(t *testing.T) {
	stored := time.Date(2024, time.March, 9, 17, 0, 0, 0, time.UTC)
	display := ToDisplay(stored)

	assert.Equal(t, 2024, display.Year())
	assert.Equal(t, time.March, display.Month())
	assert.Equal(t, 10, display.Day())
	assert.Equal(t, 0, display.Hour())
	assert.True(t, stored.Equal(display), "conversion must not move the instant")
}

func TestRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 9, 16, 59, 59, 0, time.UTC),
		time.Date(2024, time.March, 9, 17, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2021, time.June, 15, 4, 30, 12, 0, time.UTC),
	}

	for _, stored := range times {
		display := ToDisplay(stored)
		back := ToStorage(display.Year(), display.Month(), display.Day(),
			display.Hour(), display.Minute(), display.Second())
		assert.True(t, stored.Equal(back), "round trip of %v", stored)
	}
}

func TestDayRange(t *testing.T) {
	from, to := DayRange(2024, time.March, 10)

	assert.Equal(t, time.Date(2024, time.March, 9, 17, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.March, 10, 16, 59, 59, 0, time.UTC), to)
}

func TestDayRangesDoNotOverlap(t *testing.T) {
	_, toPrev := DayRange(2024, time.March, 9)
	fromNext, _ := DayRange(2024, time.March, 10)

	// Adjacent days must neither lose nor duplicate the midnight second.
	assert.Equal(t, time.Second, fromNext.Sub(toPrev))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2024, time.February)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), to)
}

func TestParseDisplayDate(t *testing.T) {
	date, err := ParseDisplayDate("10.03.2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 10, date.Day())

	_, err = ParseDisplayDate("2024-03-10")
	assert.Error(t, err)
}
