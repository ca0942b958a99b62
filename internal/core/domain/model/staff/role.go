package staff

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Role represents a staff member's job function. A user's role is fixed once
// assigned; there is no role transition machine.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleManager can review tables, inventory and staff time.
	RoleManager

	// RoleWaiter opens orders on tables and serves items.
	RoleWaiter

	// RoleCook progresses order items through preparation.
	RoleCook

	// RoleBusboy returns dirty tables to service.
	RoleBusboy
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		RoleManager: "Manager",
		RoleWaiter:  "Waiter",
		RoleCook:    "Cook",
		RoleBusboy:  "Busboy",
	}
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	switch r {
	case RoleManager, RoleWaiter, RoleCook, RoleBusboy:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses a role from its human-readable name.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}
