package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleNormalizes(t *testing.T) {
	assert.Equal(t, RoleManager, ParseRole("Manager"))
	assert.Equal(t, RoleAdmin, ParseRole("  ADMIN "))
	assert.Equal(t, Role("night auditor"), ParseRole("Night Auditor"))
}

func TestMutateRecordDeniedForRegularStaff(t *testing.T) {
	p := DefaultPolicy()

	regular := []Role{RoleReceptionist, RoleHousekeeper, RoleMaintenance, RoleChef, Role("intern")}
	for _, r := range regular {
		assert.False(t, p.Allows(r, MutateRecord), "role %q must not mutate records", r)
		assert.True(t, p.IsRegularStaff(r), "role %q should classify as regular staff", r)
	}

	for _, r := range []Role{RoleAdmin, RoleManager} {
		assert.True(t, p.Allows(r, MutateRecord), "role %q should mutate records", r)
		assert.False(t, p.IsRegularStaff(r))
	}
}

func TestRestrictedSectionsFollowAdministrativeSet(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, p.Allows(RoleAdmin, ViewStaffSection))
	assert.True(t, p.Allows(RoleManager, ViewFinancialSection))
	assert.False(t, p.Allows(RoleReceptionist, ViewStaffSection))
	assert.False(t, p.Allows(RoleChef, ViewFinancialSection))
}

func TestConfiguredAdministrativeSet(t *testing.T) {
	p := NewPolicy([]string{"Admin", "Receptionist"})

	assert.True(t, p.Allows(ParseRole("receptionist"), MutateRecord))
	assert.False(t, p.Allows(RoleManager, MutateRecord), "manager is regular staff under this configuration")
}

func TestCaseInsensitiveOnlyAtBoundary(t *testing.T) {
	p := DefaultPolicy()

	// Unparsed mixed-case text is not a policy match; callers parse first.
	assert.False(t, p.Allows(Role("Manager"), MutateRecord))
	assert.True(t, p.Allows(ParseRole("Manager"), MutateRecord))
}
