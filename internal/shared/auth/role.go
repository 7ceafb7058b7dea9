package auth

import "strings"

// Role classifies what a token holder may do. Owners can mutate,
// guests are read-only.
type Role string

const (
	RoleOwner Role = "owner"
	RoleGuest Role = "guest"
)

// ParseRole maps a raw string onto a known role. Unknown values
// degrade to guest so a forged role claim never widens access.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleOwner:
		return RoleOwner
	default:
		return RoleGuest
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleGuest
}
