package model

import (
	"time"

	"github.com/google/uuid"
)

// Operator radios carry identifiers in a fixed numeric range; anything outside
// it is foreign or system traffic and never enters a report.
const (
	MinOperatorID = 1000
	MaxOperatorID = 9999
)

// VoiceCallType is the calltype value of countable voice calls.
const VoiceCallType = 1

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// CallRecord is one raw row from a weekly call shard, in storage time.
type CallRecord struct {
	SenderID   int
	StartTime  time.Time
	EndTime    time.Time
	DurationMs int64
}

// OperatorStat is one aggregated row of the monthly report. Name and group
// stay nil when the directory has no entry for the radio.
type OperatorStat struct {
	SenderID      int     `json:"sender_id"`
	GroupName     *string `json:"group_name"`
	DisplayName   *string `json:"display_name"`
	TotalDuration string  `json:"total_duration"`
	SessionCount  int64   `json:"session_count"`
	AvgDuration   string  `json:"avg_duration"`
}

// CallDetail is one call of a single operator's monthly drill-down, with
// timestamps already converted to display time.
type CallDetail struct {
	SenderID        int       `json:"sender_id"`
	GroupName       *string   `json:"group_name"`
	DisplayName     *string   `json:"display_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// SessionRecord is one audio session of a display-local calendar day. Caller
// holds the raw stored identifier; name and group stay nil when the caller is
// not a mapped operator.
type SessionRecord struct {
	ID         uuid.UUID `json:"id"`
	Caller     string    `json:"caller"`
	CallerName *string   `json:"caller_name"`
	GroupName  *string   `json:"group_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}
