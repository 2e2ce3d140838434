package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileComplete(t *testing.T) {
	complete := User{
		FullName:     "Иванов И.И.",
		Department:   "АУП",
		ComputerName: "A-SIT11",
		Role:         RoleUser,
	}
	assert.True(t, complete.ProfileComplete())

	missing := complete
	missing.ComputerName = ""
	assert.False(t, missing.ProfileComplete())

	staff := User{Role: RoleSupport}
	assert.True(t, staff.ProfileComplete(), "staff skip the employee card")
}

func TestComputerNamePattern(t *testing.T) {
	valid := []string{"A-SIT11", "U-1", "Б-ПК12", "C-PC12"}
	for _, name := range valid {
		assert.True(t, ComputerNamePattern.MatchString(name), name)
	}

	invalid := []string{"workstation7", "a-sit11", "AB-SIT11", "A-", "A-TOOLONG1", "-SIT11"}
	for _, name := range invalid {
		assert.False(t, ComputerNamePattern.MatchString(name), name)
	}
}

func TestRoleValidAndStaff(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleSupport.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("moderator").Valid())

	assert.False(t, RoleUser.IsStaff())
	assert.True(t, RoleSupport.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
}
