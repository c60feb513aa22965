package domain

import "time"

// Feedback is a visitor submission. ApprovedAt and ApprovedBy are always
// set together and cleared together.
type Feedback struct {
	ID         int64
	Name       string
	Email      *string
	Message    string
	Rating     *int
	IsApproved bool
	CreatedAt  time.Time
	ApprovedAt *time.Time
	ApprovedBy *int64
}
