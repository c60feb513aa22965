package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// FeedbackRepository defines persistence access for visitor feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)
	List(ctx context.Context, approved *bool) ([]domain.Feedback, error)
	SetApproval(ctx context.Context, feedback *domain.Feedback) error
	Delete(ctx context.Context, id int64) error
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository returns a Postgres-backed implementation.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (name, email, message, rating, is_approved)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		feedback.Name,
		feedback.Email,
		feedback.Message,
		feedback.Rating,
		feedback.IsApproved,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	const query = `
        SELECT id, name, email, message, rating, is_approved, created_at, approved_at, approved_by
        FROM feedback WHERE id=$1`

	var feedback domain.Feedback
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&feedback.ID,
		&feedback.Name,
		&feedback.Email,
		&feedback.Message,
		&feedback.Rating,
		&feedback.IsApproved,
		&feedback.CreatedAt,
		&feedback.ApprovedAt,
		&feedback.ApprovedBy,
	); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// List returns entries newest-first, optionally filtered by approval state.
func (r *feedbackRepository) List(ctx context.Context, approved *bool) ([]domain.Feedback, error) {
	const base = `
        SELECT id, name, email, message, rating, is_approved, created_at, approved_at, approved_by
        FROM feedback`

	var (
		rows pgx.Rows
		err  error
	)
	if approved != nil {
		rows, err = r.pool.Query(ctx, base+` WHERE is_approved=$1 ORDER BY created_at DESC`, *approved)
	} else {
		rows, err = r.pool.Query(ctx, base+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var feedback domain.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.Name,
			&feedback.Email,
			&feedback.Message,
			&feedback.Rating,
			&feedback.IsApproved,
			&feedback.CreatedAt,
			&feedback.ApprovedAt,
			&feedback.ApprovedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, feedback)
	}
	return result, rows.Err()
}

func (r *feedbackRepository) SetApproval(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        UPDATE feedback SET is_approved=$1, approved_at=$2, approved_by=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		feedback.IsApproved,
		feedback.ApprovedAt,
		feedback.ApprovedBy,
		feedback.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
