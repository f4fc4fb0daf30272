// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role is the effective authorization role carried inside tokens.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "Project Manager"
	RoleDeveloper      Role = "Developer"
	RoleTester         Role = "Tester"
	// RoleNone is the sentinel role of a user without any group.
	RoleNone Role = "None"
)

// RolePriority lists the prioritized roles, highest first.
//
//nolint:gochecknoglobals
var RolePriority = Roles{RoleAdmin, RoleProjectManager, RoleDeveloper, RoleTester}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsPrioritized reports whether the role appears in RolePriority.
func (r Role) IsPrioritized() bool {
	return RolePriority.Contains(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// EffectiveRole picks the role used in tokens from a user's group names.
// The highest prioritized group wins; otherwise the first assigned group is used,
// and a user without groups gets RoleNone.
func EffectiveRole(groupNames []string) Role {
	if len(groupNames) == 0 {
		return RoleNone
	}

	for _, role := range RolePriority {
		if slices.Contains(groupNames, role.String()) {
			return role
		}
	}

	return Role(groupNames[0])
}
