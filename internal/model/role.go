package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Operator group names carried by the identity store.
const (
	GroupCommunications = "Связисты"
	GroupAdministrative = "Административная"
)

// ParseRole normalizes a role claim. Anything outside the known set collapses
// to the most restrictive role.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(value)
	default:
		return RoleUser
	}
}

// ExcludedGroups lists the group names hidden from a role.
func (r Role) ExcludedGroups() []string {
	switch r {
	case RoleManager:
		return []string{GroupCommunications}
	case RoleUser:
		return []string{GroupCommunications, GroupAdministrative}
	default:
		return nil
	}
}

// AllowsGroup reports whether rows of the given group are visible to the
// role. A nil group (unmapped radio) is visible to every role.
func (r Role) AllowsGroup(group *string) bool {
	if group == nil {
		return true
	}
	for _, excluded := range r.ExcludedGroups() {
		if *group == excluded {
			return false
		}
	}
	return true
}

// FilterStats returns the aggregate rows visible to the role. The input is
// never mutated.
func FilterStats(role Role, rows []OperatorStat) []OperatorStat {
	result := make([]OperatorStat, 0, len(rows))
	for _, row := range rows {
		if role.AllowsGroup(row.GroupName) {
			result = append(result, row)
		}
	}
	return result
}

// FilterDetails returns the drill-down rows visible to the role.
func FilterDetails(role Role, rows []CallDetail) []CallDetail {
	result := make([]CallDetail, 0, len(rows))
	for _, row := range rows {
		if role.AllowsGroup(row.GroupName) {
			result = append(result, row)
		}
	}
	return result
}

// FilterSessions returns the session-log rows visible to the role.
func FilterSessions(role Role, rows []SessionRecord) []SessionRecord {
	result := make([]SessionRecord, 0, len(rows))
	for _, row := range rows {
		if role.AllowsGroup(row.GroupName) {
			result = append(result, row)
		}
	}
	return result
}

// FilterGroupNames returns the selectable group names visible to the role.
func FilterGroupNames(role Role, names []string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		group := name
		if role.AllowsGroup(&group) {
			result = append(result, name)
		}
	}
	return result
}
