package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"-"` // Hash only, never exposed
	Role     string    `json:"role"`
	Fullname string    `json:"fullname"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// CanCreateWithRole decides whether requester (nil when unauthenticated) may
// create a new account carrying the given role. Anonymous callers and
// regular users may only create regular users; admins may create any role.
func CanCreateWithRole(requester *User, role string) bool {
	if requester == nil {
		return role == RoleUser
	}
	if requester.Role == RoleAdmin {
		return true
	}
	return role == RoleUser
}
