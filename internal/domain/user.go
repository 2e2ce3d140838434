package domain

import (
	"regexp"
	"time"
)

// Role enumerates the closed set of account roles. It is assigned at
// creation and carried verbatim through token claims.
type Role string

const (
	RoleUser    Role = "user"
	RoleSupport Role = "support"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSupport, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role grants support-side capabilities.
func (r Role) IsStaff() bool {
	return r == RoleSupport || r == RoleAdmin
}

// ComputerNamePattern constrains workstation identifiers: one department
// letter, a dash, then an alphanumeric code (e.g. "A-SIT11", "U-1").
var ComputerNamePattern = regexp.MustCompile(`^[A-ZА-Я]-[A-ZА-Я0-9]{1,6}$`)

// User is a helpdesk account: an employee, a support agent or an
// administrator, distinguished only by Role.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Department   string
	ComputerName string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// ProfileComplete reports whether the account may reach ticket-creation
// views. Staff accounts pass outright; end-users must have filled in the
// full employee card first.
func (u *User) ProfileComplete() bool {
	if u.Role.IsStaff() {
		return true
	}
	return u.FullName != "" && u.Department != "" && u.ComputerName != ""
}
