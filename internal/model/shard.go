package model

import (
	"fmt"
	"time"
)

const shardPrefix = "rptbiz"

// ShardID names one physical weekly call table.
type ShardID struct {
	Year int
	Week int
}

// Table renders the physical table name, e.g. rptbiz202405. This is the only
// place a shard name is ever built; week numbers come from ISO-week math and
// never from user input.
func (s ShardID) Table() string {
	return fmt.Sprintf("%s%d%02d", shardPrefix, s.Year, s.Week)
}

// ShardTablePrefix returns the table-name prefix of all shards of a year,
// used for catalog discovery.
func ShardTablePrefix(year int) string {
	return fmt.Sprintf("%s%d", shardPrefix, year)
}

// ShardYear extracts the year from a shard table name, or false when the name
// is not a shard table.
func ShardYear(table string) (int, bool) {
	var year, week int
	if n, err := fmt.Sscanf(table, shardPrefix+"%4d%2d", &year, &week); err != nil || n != 2 {
		return 0, false
	}
	return year, true
}

// MonthShards resolves the weekly shards that can hold rows for a month:
// every ISO week between the week of day 1 and the week of the last day,
// inclusive, within the requested year. Days spilling into an adjacent ISO
// year are clamped so the run stays contiguous and ascending; the query's
// timestamp range trims rows that belong to neighbouring months.
func MonthShards(year int, month time.Month) []ShardID {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	_, firstWeek := first.ISOWeek()
	_, lastWeek := last.ISOWeek()

	if month == time.January && firstWeek >= 52 {
		firstWeek = 1
	}
	if month == time.December && lastWeek == 1 {
		// Dec 28 always falls in the year's last ISO week.
		_, lastWeek = time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	}

	shards := make([]ShardID, 0, lastWeek-firstWeek+1)
	for week := firstWeek; week <= lastWeek; week++ {
		shards = append(shards, ShardID{Year: year, Week: week})
	}
	return shards
}
