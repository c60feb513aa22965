package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// PortfolioUpdateRequest carries a full replacement payload. Partial
// updates are not supported.
type PortfolioUpdateRequest struct {
	Data domain.PortfolioData `json:"data"`
}

// PortfolioResponse is the public view of the document.
type PortfolioResponse struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	Data      domain.PortfolioData `json:"data"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewPortfolioResponse maps a domain portfolio.
func NewPortfolioResponse(portfolio *domain.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		ID:        portfolio.ID,
		Name:      portfolio.Name,
		Data:      portfolio.Data,
		UpdatedAt: portfolio.UpdatedAt,
	}
}

// PortfolioHistoryResponse is one history snapshot.
type PortfolioHistoryResponse struct {
	ID                int64                `json:"id"`
	PortfolioID       int64                `json:"portfolio_id"`
	Data              domain.PortfolioData `json:"data"`
	UpdatedBy         *int64               `json:"updated_by"`
	UpdatedAt         time.Time            `json:"updated_at"`
	ChangeDescription string               `json:"change_description"`
}

// NewPortfolioHistoryResponse maps a history entry.
func NewPortfolioHistoryResponse(entry *domain.PortfolioHistory) PortfolioHistoryResponse {
	return PortfolioHistoryResponse{
		ID:                entry.ID,
		PortfolioID:       entry.PortfolioID,
		Data:              entry.Data,
		UpdatedBy:         entry.UpdatedBy,
		UpdatedAt:         entry.UpdatedAt,
		ChangeDescription: entry.ChangeDescription,
	}
}
