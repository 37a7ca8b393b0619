package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Role – immutable value object
// ---------------------------------------------------------------------------

// Role is the authorisation level of a user.
type Role struct {
	value string
}

const (
	roleUser  = "USER"
	roleAdmin = "ADMIN"
)

var (
	RoleUser  = Role{value: roleUser}
	RoleAdmin = Role{value: roleAdmin}
)

var validRoles = map[string]Role{
	roleUser:  RoleUser,
	roleAdmin: RoleAdmin,
}

// NewRole creates a Role from a raw string.
func NewRole(s string) (Role, error) {
	r, ok := validRoles[s]
	if !ok {
		return Role{}, fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

func (r Role) String() string { return r.value }

// IsAdmin reports whether the role may change settings and read every offer.
func (r Role) IsAdmin() bool { return r.value == roleAdmin }
