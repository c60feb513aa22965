package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// PortfolioRepository manages the singleton document and its history.
type PortfolioRepository interface {
	Get(ctx context.Context) (*domain.Portfolio, error)
	Create(ctx context.Context, portfolio *domain.Portfolio) error
	// UpdateWithHistory persists the pre-update snapshot and the replaced
	// document in one transaction. Neither row is visible without the
	// other.
	UpdateWithHistory(ctx context.Context, portfolio *domain.Portfolio, snapshot *domain.PortfolioHistory) error
	ListHistory(ctx context.Context, skip, limit int) ([]domain.PortfolioHistory, error)
}

type portfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository returns a Postgres-backed implementation.
func NewPortfolioRepository(pool *pgxpool.Pool) PortfolioRepository {
	return &portfolioRepository{pool: pool}
}

func (r *portfolioRepository) Get(ctx context.Context) (*domain.Portfolio, error) {
	const query = `
        SELECT id, name, language, data, updated_by, created_at, updated_at
        FROM portfolios ORDER BY id LIMIT 1`

	var (
		portfolio domain.Portfolio
		raw       []byte
	)
	if err := r.pool.QueryRow(ctx, query).Scan(
		&portfolio.ID,
		&portfolio.Name,
		&portfolio.Language,
		&raw,
		&portfolio.UpdatedBy,
		&portfolio.CreatedAt,
		&portfolio.UpdatedAt,
	); err != nil {
		return nil, err
	}

	data, err := domain.ParsePortfolioData(raw)
	if err != nil {
		return nil, fmt.Errorf("stored portfolio %d is malformed: %w", portfolio.ID, err)
	}
	portfolio.Data = *data
	return &portfolio, nil
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	raw, err := json.Marshal(portfolio.Data)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO portfolios (name, language, data)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		portfolio.Name,
		portfolio.Language,
		raw,
	).Scan(&portfolio.ID, &portfolio.CreatedAt, &portfolio.UpdatedAt)
}

func (r *portfolioRepository) UpdateWithHistory(ctx context.Context, portfolio *domain.Portfolio, snapshot *domain.PortfolioHistory) error {
	newData, err := json.Marshal(portfolio.Data)
	if err != nil {
		return err
	}
	oldData, err := json.Marshal(snapshot.Data)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertHistory = `
        INSERT INTO portfolio_history (portfolio_id, data, updated_by, change_description)
        VALUES ($1, $2, $3, $4)
        RETURNING id, updated_at`
	if err := tx.QueryRow(ctx, insertHistory,
		snapshot.PortfolioID,
		oldData,
		snapshot.UpdatedBy,
		snapshot.ChangeDescription,
	).Scan(&snapshot.ID, &snapshot.UpdatedAt); err != nil {
		return err
	}

	const updatePortfolio = `
        UPDATE portfolios SET data=$1, updated_by=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	if err := tx.QueryRow(ctx, updatePortfolio,
		newData,
		portfolio.UpdatedBy,
		portfolio.ID,
	).Scan(&portfolio.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *portfolioRepository) ListHistory(ctx context.Context, skip, limit int) ([]domain.PortfolioHistory, error) {
	const query = `
        SELECT id, portfolio_id, data, updated_by, updated_at, change_description
        FROM portfolio_history ORDER BY updated_at DESC OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PortfolioHistory
	for rows.Next() {
		var (
			entry domain.PortfolioHistory
			raw   []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.PortfolioID,
			&raw,
			&entry.UpdatedBy,
			&entry.UpdatedAt,
			&entry.ChangeDescription,
		); err != nil {
			return nil, err
		}
		data, err := domain.ParsePortfolioData(raw)
		if err != nil {
			return nil, fmt.Errorf("history entry %d is malformed: %w", entry.ID, err)
		}
		entry.Data = *data
		result = append(result, entry)
	}
	return result, rows.Err()
}
