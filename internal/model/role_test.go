package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleManager, ParseRole("manager"))
	assert.Equal(t, RoleUser, ParseRole("user"))

	// Anything unknown collapses to the most restrictive role.
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("root"))
	assert.Equal(t, RoleUser, ParseRole("Admin"))
}

func TestFilterStats(t *testing.T) {
	rows := []OperatorStat{
		{SenderID: 1001, GroupName: strPtr(GroupCommunications)},
		{SenderID: 1002, GroupName: strPtr(GroupAdministrative)},
		{SenderID: 1003, GroupName: strPtr("Дежурная")},
		{SenderID: 1004},
	}

	tests := []struct {
		name string
		role Role
		want []int
	}{
		{"admin sees everything", RoleAdmin, []int{1001, 1002, 1003, 1004}},
		{"manager loses communications", RoleManager, []int{1002, 1003, 1004}},
		{"user loses communications and administrative", RoleUser, []int{1003, 1004}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterStats(tt.role, rows)
			got := make([]int, 0, len(filtered))
			for _, row := range filtered {
				got = append(got, row.SenderID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	// Input order and content untouched.
	assert.Len(t, rows, 4)
	assert.Equal(t, 1001, rows[0].SenderID)
}

func TestFilterStatsIdempotent(t *testing.T) {
	rows := []OperatorStat{
		{SenderID: 1001, GroupName: strPtr(GroupCommunications)},
		{SenderID: 1003, GroupName: strPtr("Дежурная")},
	}

	once := FilterStats(RoleUser, rows)
	twice := FilterStats(RoleUser, once)
	assert.Equal(t, once, twice)

	for _, row := range once {
		if row.GroupName != nil {
			assert.NotEqual(t, GroupCommunications, *row.GroupName)
			assert.NotEqual(t, GroupAdministrative, *row.GroupName)
		}
	}
}

func TestFilterStatsNilGroupPasses(t *testing.T) {
	// A radio without a directory entry stays visible to every role.
	rows := []OperatorStat{{SenderID: 4242}}
	for _, role := range []Role{RoleAdmin, RoleManager, RoleUser} {
		assert.Len(t, FilterStats(role, rows), 1, "role %s", role)
	}
}

func TestFilterGroupNames(t *testing.T) {
	names := []string{GroupAdministrative, "Дежурная", GroupCommunications}

	assert.Equal(t, names, FilterGroupNames(RoleAdmin, names))
	assert.Equal(t, []string{GroupAdministrative, "Дежурная"}, FilterGroupNames(RoleManager, names))
	assert.Equal(t, []string{"Дежурная"}, FilterGroupNames(RoleUser, names))
}

func TestFilterSessions(t *testing.T) {
	rows := []SessionRecord{
		{Caller: "1001", GroupName: strPtr(GroupCommunications)},
		{Caller: "1003", GroupName: strPtr("Дежурная")},
		{Caller: "dispatcher"},
	}

	filtered := FilterSessions(RoleManager, rows)
	assert.Len(t, filtered, 2)
	assert.Equal(t, "1003", filtered[0].Caller)
	assert.Equal(t, "dispatcher", filtered[1].Caller)
}
