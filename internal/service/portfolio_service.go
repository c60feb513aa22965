package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const (
	defaultPortfolioName = "default"
	defaultLanguage      = "en"
	updateDescription    = "Portfolio updated"
	defaultHistoryLimit  = 10
)

// PortfolioService owns the singleton document and its edit history.
type PortfolioService struct {
	portfolios repository.PortfolioRepository
}

// NewPortfolioService builds the service.
func NewPortfolioService(portfolios repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{portfolios: portfolios}
}

// Get returns the document, creating it from the fixed default payload on
// first read. Two racing first reads may both insert; Get always selects
// the lowest id, so the duplicate row is unreachable and the content
// identical either way.
func (s *PortfolioService) Get(ctx context.Context) (*domain.Portfolio, error) {
	portfolio, err := s.portfolios.Get(ctx)
	if err == nil {
		return portfolio, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	portfolio = &domain.Portfolio{
		Name:     defaultPortfolioName,
		Language: defaultLanguage,
		Data:     domain.DefaultPortfolioData(),
	}
	if err := s.portfolios.Create(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// Update replaces the document payload wholesale, archiving the pre-update
// snapshot first. Update never creates; a missing document is NotFound and
// leaves no history behind. Snapshot and replacement commit atomically.
func (s *PortfolioService) Update(ctx context.Context, data domain.PortfolioData, actingAccountID int64) (*domain.Portfolio, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	current, err := s.portfolios.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("portfolio", nil)
		}
		return nil, err
	}

	snapshot := &domain.PortfolioHistory{
		PortfolioID:       current.ID,
		Data:              current.Data,
		UpdatedBy:         &actingAccountID,
		ChangeDescription: updateDescription,
	}

	current.Data = data
	current.UpdatedBy = &actingAccountID
	if err := s.portfolios.UpdateWithHistory(ctx, current, snapshot); err != nil {
		return nil, err
	}
	return current, nil
}

// History returns snapshots newest-first. Negative skip clamps to zero;
// non-positive limit falls back to the default page size.
func (s *PortfolioService) History(ctx context.Context, skip, limit int) ([]domain.PortfolioHistory, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.portfolios.ListHistory(ctx, skip, limit)
}
