package service

import (
	"fmt"
	"sort"

	"report-service/internal/model"
)

// Aggregate pivots federated call records into per-operator totals. Grouping
// preserves first-seen order; the result is sorted by session count
// descending, ties keeping that order.
func Aggregate(records []model.CallRecord) []model.OperatorStat {
	type bucket struct {
		senderID int
		totalMs  int64
		count    int64
	}

	index := make(map[int]*bucket)
	order := make([]*bucket, 0)
	for _, record := range records {
		b, ok := index[record.SenderID]
		if !ok {
			b = &bucket{senderID: record.SenderID}
			index[record.SenderID] = b
			order = append(order, b)
		}
		b.totalMs += record.DurationMs
		b.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	stats := make([]model.OperatorStat, 0, len(order))
	for _, b := range order {
		var avgMs int64
		if b.count > 0 {
			avgMs = b.totalMs / b.count
		}
		stats = append(stats, model.OperatorStat{
			SenderID:      b.senderID,
			TotalDuration: FormatDuration(b.totalMs),
			SessionCount:  b.count,
			AvgDuration:   FormatDuration(avgMs),
		})
	}
	return stats
}

// FormatDuration renders milliseconds as HH:MM:SS. Hours do not wrap at 24;
// monthly per-operator totals legitimately exceed a day.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
