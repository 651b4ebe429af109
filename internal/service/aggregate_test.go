package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-service/internal/model"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"zero", 0, "00:00:00"},
		{"twenty seconds", 20000, "00:00:20"},
		{"one minute", 60000, "00:01:00"},
		{"sub-second remainder truncated", 90500, "00:01:30"},
		{"one hour", 3600000, "01:00:00"},
		{"hours do not wrap at 24", 90000000, "25:00:00"},
		{"month-scale total", 360000000, "100:00:00"},
		{"negative clamps to zero", -5000, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.ms))
		})
	}
}

func TestAggregate(t *testing.T) {
	records := []model.CallRecord{
		{SenderID: 1001, DurationMs: 10000},
		{SenderID: 1001, DurationMs: 20000},
		{SenderID: 1001, DurationMs: 30000},
		{SenderID: 1002, DurationMs: 45000},
	}

	stats := Aggregate(records)
	require.Len(t, stats, 2)

	assert.Equal(t, 1001, stats[0].SenderID)
	assert.Equal(t, int64(3), stats[0].SessionCount)
	assert.Equal(t, "00:01:00", stats[0].TotalDuration)
	assert.Equal(t, "00:00:20", stats[0].AvgDuration)

	assert.Equal(t, 1002, stats[1].SenderID)
	assert.Equal(t, int64(1), stats[1].SessionCount)
	assert.Equal(t, "00:00:45", stats[1].TotalDuration)
	assert.Equal(t, "00:00:45", stats[1].AvgDuration)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]model.CallRecord{}))
}

func TestAggregateSortsBySessionCount(t *testing.T) {
	records := []model.CallRecord{
		{SenderID: 1001, DurationMs: 500000},
		{SenderID: 1002, DurationMs: 1000},
		{SenderID: 1002, DurationMs: 1000},
		{SenderID: 1002, DurationMs: 1000},
		{SenderID: 1003, DurationMs: 2000},
		{SenderID: 1003, DurationMs: 2000},
	}

	stats := Aggregate(records)
	require.Len(t, stats, 3)

	// Busiest by call count wins regardless of talk time.
	assert.Equal(t, 1002, stats[0].SenderID)
	assert.Equal(t, 1003, stats[1].SenderID)
	assert.Equal(t, 1001, stats[2].SenderID)
}

func TestAggregateTiesKeepFirstSeenOrder(t *testing.T) {
	records := []model.CallRecord{
		{SenderID: 1005, DurationMs: 1000},
		{SenderID: 1001, DurationMs: 9000},
		{SenderID: 1003, DurationMs: 4000},
	}

	stats := Aggregate(records)
	require.Len(t, stats, 3)
	assert.Equal(t, 1005, stats[0].SenderID)
	assert.Equal(t, 1001, stats[1].SenderID)
	assert.Equal(t, 1003, stats[2].SenderID)
}

func TestAggregateTotalsIndependentOfRecordOrder(t *testing.T) {
	records := []model.CallRecord{
		{SenderID: 1001, DurationMs: 10000},
		{SenderID: 1002, DurationMs: 20000},
		{SenderID: 1001, DurationMs: 30000},
		{SenderID: 1003, DurationMs: 40000},
		{SenderID: 1002, DurationMs: 50000},
		{SenderID: 1001, DurationMs: 60000},
	}

	reference := byOperator(Aggregate(records))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.CallRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := byOperator(Aggregate(shuffled))
		assert.Equal(t, reference, got)
	}
}

func byOperator(stats []model.OperatorStat) map[int]model.OperatorStat {
	out := make(map[int]model.OperatorStat, len(stats))
	for _, s := range stats {
		out[s.SenderID] = s
	}
	return out
}
