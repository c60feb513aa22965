package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const (
	maxFeedbackNameLen    = 100
	maxFeedbackEmailLen   = 100
	maxFeedbackMessageLen = 1000
)

// FeedbackInput carries a visitor submission.
type FeedbackInput struct {
	Name    string
	Email   *string
	Message string
	Rating  *int
}

// FeedbackService owns the moderation queue.
type FeedbackService struct {
	feedback repository.FeedbackRepository
}

// NewFeedbackService builds the service.
func NewFeedbackService(feedback repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback}
}

// Submit records a new entry awaiting moderation. No auth required.
func (s *FeedbackService) Submit(ctx context.Context, input FeedbackInput) (*domain.Feedback, error) {
	if err := validateFeedbackInput(input); err != nil {
		return nil, err
	}

	feedback := &domain.Feedback{
		Name:       input.Name,
		Email:      input.Email,
		Message:    input.Message,
		Rating:     input.Rating,
		IsApproved: false,
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// ListApproved returns publicly visible entries, newest-first.
func (s *FeedbackService) ListApproved(ctx context.Context) ([]domain.Feedback, error) {
	approved := true
	return s.feedback.List(ctx, &approved)
}

// ListPending returns entries awaiting moderation, newest-first.
func (s *FeedbackService) ListPending(ctx context.Context) ([]domain.Feedback, error) {
	approved := false
	return s.feedback.List(ctx, &approved)
}

// ListAll returns every entry, newest-first.
func (s *FeedbackService) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.List(ctx, nil)
}

// SetApproval toggles moderation state. Approving stamps the approval
// timestamp and approver together; rejecting clears both. Re-approval and
// un-approval are valid at any time.
func (s *FeedbackService) SetApproval(ctx context.Context, id int64, approve bool, actingAccountID int64) (*domain.Feedback, error) {
	feedback, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("feedback", map[string]any{"id": id})
		}
		return nil, err
	}

	feedback.IsApproved = approve
	if approve {
		now := time.Now()
		feedback.ApprovedAt = &now
		feedback.ApprovedBy = &actingAccountID
	} else {
		feedback.ApprovedAt = nil
		feedback.ApprovedBy = nil
	}

	if err := s.feedback.SetApproval(ctx, feedback); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("feedback", map[string]any{"id": id})
		}
		return nil, err
	}
	return feedback, nil
}

// Delete permanently removes an entry.
func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	if err := s.feedback.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("feedback", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func validateFeedbackInput(input FeedbackInput) error {
	if len(input.Name) == 0 || len(input.Name) > maxFeedbackNameLen {
		return apperrors.NewValidationError("name must be 1-100 characters", map[string]any{"field": "name"})
	}
	if len(input.Message) == 0 || len(input.Message) > maxFeedbackMessageLen {
		return apperrors.NewValidationError("message must be 1-1000 characters", map[string]any{"field": "message"})
	}
	if input.Email != nil && len(*input.Email) > maxFeedbackEmailLen {
		return apperrors.NewValidationError("email must be at most 100 characters", map[string]any{"field": "email"})
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"field": "rating"})
	}
	return nil
}
