package models

import "time"

// RoleType is the role of an operator account.
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleUser  RoleType = "user"
)

// User defines an operator account based on the 'users' table.
// Fixed is true only for the first-created admin; a fixed user can never
// be demoted, deactivated or deleted.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Mail      string    `json:"mail" db:"mail"`
	Password  string    `json:"-" db:"password"`
	Role      RoleType  `json:"role" db:"role"`
	State     bool      `json:"state" db:"state"`
	Fixed     bool      `json:"fixed" db:"fixed"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
