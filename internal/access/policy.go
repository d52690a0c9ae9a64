// Package access decides which restricted sections and mutating actions a
// role may use. Decisions are pure functions of (role, action); callers
// re-evaluate whenever the active user or their role changes.
package access

import (
	"errors"
	"strings"
)

// Role is a normalized (lowercase) position name. The set of valid
// positions is configuration-driven, so Role stays an open string type with
// named constants for the well-known positions.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleReceptionist Role = "receptionist"
	RoleHousekeeper  Role = "housekeeper"
	RoleMaintenance  Role = "maintenance"
	RoleChef         Role = "chef"
)

// ParseRole normalizes external or legacy role text. Comparison against the
// administrative set is case-insensitive, and that insensitivity lives only
// here at the parse boundary.
func ParseRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// Action is a category of gated behavior.
type Action int

const (
	// ViewStaffSection gates visibility of the staff directory.
	ViewStaffSection Action = iota
	// ViewFinancialSection gates visibility of invoice and payment views.
	ViewFinancialSection
	// MutateRecord gates every add/edit/delete/save across the mutable views.
	MutateRecord
)

func (a Action) String() string {
	switch a {
	case ViewStaffSection:
		return "view_staff_section"
	case ViewFinancialSection:
		return "view_financial_section"
	case MutateRecord:
		return "mutate_record"
	default:
		return "unknown"
	}
}

// ErrDenied is returned by services when the policy rejects an action.
var ErrDenied = errors.New("permission denied")

// Policy holds the configured administrative role set. Roles outside the
// set are classified as regular staff: they may view the unrestricted
// screens but never mutate records.
type Policy struct {
	administrative map[Role]struct{}
}

// NewPolicy builds a policy from the configured administrative role names.
func NewPolicy(adminRoles []string) *Policy {
	set := make(map[Role]struct{}, len(adminRoles))
	for _, r := range adminRoles {
		set[ParseRole(r)] = struct{}{}
	}
	return &Policy{administrative: set}
}

// DefaultPolicy grants administrative access to admins and managers.
func DefaultPolicy() *Policy {
	return NewPolicy([]string{string(RoleAdmin), string(RoleManager)})
}

// Allows reports whether the role may perform the action.
func (p *Policy) Allows(role Role, action Action) bool {
	switch action {
	case ViewStaffSection, ViewFinancialSection, MutateRecord:
		return p.isAdministrative(role)
	default:
		return false
	}
}

// IsRegularStaff reports whether the role sits outside the administrative
// set.
func (p *Policy) IsRegularStaff(role Role) bool {
	return !p.isAdministrative(role)
}

func (p *Policy) isAdministrative(role Role) bool {
	_, ok := p.administrative[role]
	return ok
}
