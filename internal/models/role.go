package models

import "fmt"

// Role is the privilege level bound to a user identity.
type Role string

const (
	// RoleUnassigned means no role row exists for the user. It is never
	// stored; repositories report it when a lookup finds no assignment.
	RoleUnassigned Role = ""
	RoleUser       Role = "user"
	RoleModerator  Role = "moderator"
	RoleOwner      Role = "owner"
)

// roleRank orders roles for privilege comparisons.
var roleRank = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleOwner:     3,
}

// ParseRole converts a string into a Role.
//
// Only the three stored roles are accepted; RoleUnassigned is internal
// and never comes from client input.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleOwner:
		return Role(s), nil
	}
	return RoleUnassigned, fmt.Errorf("invalid role: %q", s)
}

// Effective resolves the default policy for missing assignments:
// an unassigned user acts as a plain user.
func (r Role) Effective() Role {
	if r == RoleUnassigned {
		return RoleUser
	}
	return r
}

// AtLeast reports whether the role grants at least the privileges of
// "minimum". Unassigned roles are compared through their effective role.
func (r Role) AtLeast(minimum Role) bool {
	return roleRank[r.Effective()] >= roleRank[minimum.Effective()]
}
