package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveRole(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		want   Role
	}{
		{name: "no groups", groups: nil, want: RoleNone},
		{name: "single prioritized group", groups: []string{"Tester"}, want: RoleTester},
		{name: "highest priority wins", groups: []string{"Tester", "Developer", "Admin"}, want: RoleAdmin},
		{name: "project manager over developer", groups: []string{"Developer", "Project Manager"}, want: RoleProjectManager},
		{name: "prioritized beats unknown", groups: []string{"Reviewer", "Developer"}, want: RoleDeveloper},
		{name: "fallback to first group", groups: []string{"Reviewer", "Auditor"}, want: Role("Reviewer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveRole(tt.groups))
		})
	}
}

func TestUser_Role(t *testing.T) {
	user := &User{Groups: []string{"Developer"}}
	assert.Equal(t, RoleDeveloper, user.Role())

	user.Groups = nil
	assert.Equal(t, RoleNone, user.Role())
}

func TestRoles_Contains(t *testing.T) {
	roles := Roles{RoleAdmin, RoleTester}

	assert.True(t, roles.Contains(RoleAdmin))
	assert.False(t, roles.Contains(RoleDeveloper))
	assert.Equal(t, []string{"Admin", "Tester"}, roles.ToStrings())
	assert.True(t, RoleProjectManager.IsPrioritized())
	assert.False(t, RoleNone.IsPrioritized())
}
