package domain

import "time"

// Role enumerates access levels for accounts.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEngineer Role = "ENGINEER"
	RoleAdmin    Role = "ADMIN"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(role Role) bool {
	switch role {
	case RoleCustomer, RoleEngineer, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the domain model for an account able to sign in.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
