package domain

import "time"

// PortfolioHistory is an immutable snapshot of the document payload as it
// was before one update. Entries are never mutated or deleted.
type PortfolioHistory struct {
	ID                int64
	PortfolioID       int64
	Data              PortfolioData
	UpdatedBy         *int64
	UpdatedAt         time.Time
	ChangeDescription string
}
