package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// FeedbackCreateRequest is a visitor submission.
type FeedbackCreateRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Message string  `json:"message"`
	Rating  *int    `json:"rating"`
}

// FeedbackApproveRequest toggles moderation state.
type FeedbackApproveRequest struct {
	Approve bool `json:"approve"`
}

// FeedbackResponse is the public view of one entry.
type FeedbackResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      *string    `json:"email"`
	Message    string     `json:"message"`
	Rating     *int       `json:"rating"`
	IsApproved bool       `json:"is_approved"`
	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at"`
}

// NewFeedbackResponse maps a domain feedback entry.
func NewFeedbackResponse(feedback *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:         feedback.ID,
		Name:       feedback.Name,
		Email:      feedback.Email,
		Message:    feedback.Message,
		Rating:     feedback.Rating,
		IsApproved: feedback.IsApproved,
		CreatedAt:  feedback.CreatedAt,
		ApprovedAt: feedback.ApprovedAt,
	}
}
