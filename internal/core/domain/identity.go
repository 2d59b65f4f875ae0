package domain

import "time"

type UserID string

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity is the authenticated caller, produced by the academy's auth
// service and carried in the bearer token.
type Identity struct {
	UserID UserID
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Entitlement grants a user access to every asset of a course. Records
// are written by the purchase/payment service; read-only here.
type Entitlement struct {
	UserID    UserID    `json:"user_id"`
	CourseID  CourseID  `json:"course_id"`
	GrantedAt time.Time `json:"granted_at"`
}

// AccessDecision is the outcome of an authorization check.
type AccessDecision struct {
	Allowed bool
	Reason  string
}

func Allow() AccessDecision {
	return AccessDecision{Allowed: true}
}

func Deny(reason string) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason}
}
