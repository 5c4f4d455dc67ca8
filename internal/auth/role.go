package auth

import "voyager-be/internal/apperr"

type Role string

const (
	RoleVoyager    Role = "voyager"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleCook       Role = "cook"
	RoleSupervisor Role = "supervisor"
)

var roles = []Role{RoleVoyager, RoleAdmin, RoleManager, RoleCook, RoleSupervisor}

func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsStaff is true for the roles that work orders: cook and supervisor.
func (r Role) IsStaff() bool {
	return r == RoleCook || r == RoleSupervisor
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", apperr.Invalid("invalid role %q", s)
	}
	return r, nil
}
