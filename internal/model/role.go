// Package model contains the database models used throughout the application
package model

// Role tags a principal row. It is set at creation and never mutated.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Principal is the minimal projection of an authenticated account that gets
// attached to the request context. It must never carry the password hash or
// the stored login token.
type Principal struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
