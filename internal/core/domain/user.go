package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles. Authorization decisions
// switch on this type rather than on raw strings.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCommon Role = "common"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCommon:
		return true
	}
	return false
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
