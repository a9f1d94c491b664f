package domain

import (
	"fmt"
	"strings"
)

// Role is the access level carried by a Principal. The zero value is RoleNone
// (anonymous).
type Role uint8

const (
	RoleNone Role = iota
	RoleSuperAdmin
	RoleAuthOwner
	RoleNotAuthOwner
	RoleAuthManager
	RoleNotAuthManager
	RoleUser
)

// backendRolePrefix is how the Pirates API spells roles inside its tokens
// ("ROLE_AUTH_OWNER").
const backendRolePrefix = "ROLE_"

var roleNames = map[Role]string{
	RoleSuperAdmin:     "SUPER_ADMIN",
	RoleAuthOwner:      "AUTH_OWNER",
	RoleNotAuthOwner:   "NOTAUTH_OWNER",
	RoleAuthManager:    "AUTH_MANAGER",
	RoleNotAuthManager: "NOTAUTH_MANAGER",
	RoleUser:           "USER",
}

// Roles lists every assignable role, in declaration order.
func Roles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleAuthOwner,
		RoleNotAuthOwner,
		RoleAuthManager,
		RoleNotAuthManager,
		RoleUser,
	}
}

// ParseRole accepts both the bare name and the ROLE_-prefixed backend name,
// case-insensitively. An empty string parses to RoleNone.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return RoleNone, nil
	}
	name = strings.TrimPrefix(name, backendRolePrefix)
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// String returns the bare role name, or "" for RoleNone.
func (r Role) String() string {
	return roleNames[r]
}

// IsSet reports whether r is an assignable role.
func (r Role) IsSet() bool {
	_, ok := roleNames[r]
	return ok
}

// Family returns the console area a role belongs to.
func (r Role) Family() Family {
	switch r {
	case RoleSuperAdmin:
		return FamilyAdmin
	case RoleAuthOwner, RoleNotAuthOwner:
		return FamilyOwner
	case RoleAuthManager, RoleNotAuthManager:
		return FamilyManager
	case RoleUser:
		return FamilyUser
	case RoleNone:
		return FamilyNone
	default:
		return FamilyNone
	}
}

// HasAccommodation reports whether sessions with this role carry an
// accommodation context.
func (r Role) HasAccommodation() bool {
	switch r.Family() {
	case FamilyOwner, FamilyManager:
		return true
	default:
		return false
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Family groups roles by console area. It decides which login page an
// anonymous visitor is sent to.
type Family string

const (
	FamilyNone    Family = ""
	FamilyAdmin   Family = "admin"
	FamilyOwner   Family = "owner"
	FamilyManager Family = "manager"
	FamilyUser    Family = "user"
)

// ParseFamily maps a login form's family field to a Family.
func ParseFamily(s string) (Family, error) {
	switch f := Family(strings.ToLower(strings.TrimSpace(s))); f {
	case FamilyAdmin, FamilyOwner, FamilyManager, FamilyUser:
		return f, nil
	default:
		return FamilyNone, fmt.Errorf("unknown role family %q", s)
	}
}
