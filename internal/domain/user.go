package domain

import (
	"strings"
	"time"
)

// Role is the persisted authority of an account.
type Role string

const (
	RoleAdmin    Role = "ROLE_ADMIN"
	RoleCustomer Role = "ROLE_CUSTOMER"
)

const rolePrefix = "ROLE_"

// Name returns the role without its namespace prefix, e.g. "ADMIN".
func (r Role) Name() string {
	return strings.TrimPrefix(string(r), rolePrefix)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// ParseRole accepts either the bare ("ADMIN") or prefixed ("ROLE_ADMIN") form.
func ParseRole(s string) (Role, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, rolePrefix) {
		s = rolePrefix + s
	}
	r := Role(s)
	return r, r.Valid()
}

// User is an account able to authenticate against the API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string `json:"-"`
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
