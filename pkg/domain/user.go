// Package domain holds the core entities and the error taxonomy of the
// transfer system.
package domain

import (
	"time"

	"github.com/amirasaad/transfeo/pkg/money"
	"github.com/google/uuid"
)

// Role is a closed enum of account roles.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account holder. The balance is always EUR-denominated; the IBAN
// is unique and immutable after creation. Inactive users cannot authenticate
// or transact.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	IBAN         string
	Balance      money.Money
	Role         Role
	Active       bool
	PasswordHash string
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
