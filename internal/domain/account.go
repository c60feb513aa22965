package domain

import "time"

// Account is the domain model for authenticated users of the admin surface.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
