package models

import "time"

// User represents a back-office user able to authenticate against the API.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User roles. Admin unlocks the deleted-clients audit view and restore.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)
