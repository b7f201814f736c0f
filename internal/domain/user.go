package domain

import (
	"strconv"
	"time"
)

// UserRole defines the authorization role attached to an account.
type UserRole string

const (
	RoleMember UserRole = "MEMBER"
	RoleAdmin  UserRole = "ADMIN"
)

// User is the domain model for a registered account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Subject returns the canonical string form of the user id, as carried
// in token claims and compared by access checks.
func (u *User) Subject() string {
	return strconv.FormatInt(u.ID, 10)
}
