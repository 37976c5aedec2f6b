package domain

import (
	"errors"
	"time"
)

// Role is the closed set of user roles accepted by the system.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleInvoicingUser Role = "invoicing_user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleInvoicingUser
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an identity record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LoginID      string    `json:"login_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser carries the fields needed to persist a user. ID and CreatedAt are
// assigned by the store.
type NewUser struct {
	Name         string
	LoginID      string
	Email        string
	PasswordHash string
	Role         Role
}

// IdentityClaims are the extra claims embedded in an access token.
type IdentityClaims struct {
	Email string
	Role  Role
	Name  string
}

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	IdentityClaims
}
