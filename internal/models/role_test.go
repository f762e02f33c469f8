package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      Role
		expectedError bool
	}{
		{name: "owner", input: "owner", expected: RoleOwner},
		{name: "moderator", input: "moderator", expected: RoleModerator},
		{name: "user", input: "user", expected: RoleUser},
		{name: "empty is not accepted from input", input: "", expectedError: true},
		{name: "unknown role", input: "admin", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}

func TestRole_Effective(t *testing.T) {
	assert.Equal(t, RoleUser, RoleUnassigned.Effective())
	assert.Equal(t, RoleUser, RoleUser.Effective())
	assert.Equal(t, RoleModerator, RoleModerator.Effective())
	assert.Equal(t, RoleOwner, RoleOwner.Effective())
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleOwner.AtLeast(RoleModerator))
	assert.True(t, RoleOwner.AtLeast(RoleOwner))
	assert.True(t, RoleModerator.AtLeast(RoleModerator))
	assert.False(t, RoleModerator.AtLeast(RoleOwner))
	assert.False(t, RoleUser.AtLeast(RoleModerator))

	// Unassigned compares through its effective role
	assert.True(t, RoleUnassigned.AtLeast(RoleUser))
	assert.False(t, RoleUnassigned.AtLeast(RoleModerator))
}
