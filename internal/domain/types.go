package domain

import "time"

// ID is used across domain entities.
type ID int64

// Role of an operator account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// RequestContext carries authenticated operator info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
}

// Clock returns the current time.
type Clock func() time.Time
