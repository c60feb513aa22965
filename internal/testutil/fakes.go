// Package testutil provides in-memory repository implementations for
// service and transport tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// FakeAccountRepo is an in-memory AccountRepository.
type FakeAccountRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Account
}

// NewFakeAccountRepo builds an empty repo.
func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{nextID: 1, rows: make(map[int64]domain.Account)}
}

func (r *FakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.rows[account.ID] = *account
	return nil
}

func (r *FakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	account.UpdatedAt = time.Now()
	r.rows[account.ID] = *account
	return nil
}

func (r *FakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Username == username {
			copied := row
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *FakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			copied := row
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Count reports the number of stored accounts.
func (r *FakeAccountRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// FakePortfolioRepo is an in-memory PortfolioRepository.
type FakePortfolioRepo struct {
	mu        sync.Mutex
	nextID    int64
	portfolio *domain.Portfolio
	history   []domain.PortfolioHistory
	// FailUpdate forces UpdateWithHistory to fail without persisting
	// either row.
	FailUpdate error
}

// NewFakePortfolioRepo builds an empty repo.
func NewFakePortfolioRepo() *FakePortfolioRepo {
	return &FakePortfolioRepo{nextID: 1}
}

func (r *FakePortfolioRepo) Get(_ context.Context) (*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.portfolio == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *r.portfolio
	return &copied, nil
}

func (r *FakePortfolioRepo) Create(_ context.Context, portfolio *domain.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	portfolio.ID = r.nextID
	r.nextID++
	portfolio.CreatedAt = time.Now()
	portfolio.UpdatedAt = portfolio.CreatedAt
	if r.portfolio == nil {
		copied := *portfolio
		r.portfolio = &copied
	}
	return nil
}

func (r *FakePortfolioRepo) UpdateWithHistory(_ context.Context, portfolio *domain.Portfolio, snapshot *domain.PortfolioHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpdate != nil {
		return r.FailUpdate
	}
	if r.portfolio == nil || r.portfolio.ID != portfolio.ID {
		return pgx.ErrNoRows
	}

	snapshot.ID = int64(len(r.history) + 1)
	snapshot.UpdatedAt = time.Now()
	r.history = append(r.history, *snapshot)

	portfolio.UpdatedAt = time.Now()
	copied := *portfolio
	r.portfolio = &copied
	return nil
}

func (r *FakePortfolioRepo) ListHistory(_ context.Context, skip, limit int) ([]domain.PortfolioHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]domain.PortfolioHistory, len(r.history))
	copy(entries, r.history)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})

	if skip >= len(entries) {
		return nil, nil
	}
	entries = entries[skip:]
	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// HistoryCount reports the number of stored snapshots.
func (r *FakePortfolioRepo) HistoryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

// FakeFeedbackRepo is an in-memory FeedbackRepository.
type FakeFeedbackRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Feedback
}

// NewFakeFeedbackRepo builds an empty repo.
func NewFakeFeedbackRepo() *FakeFeedbackRepo {
	return &FakeFeedbackRepo{nextID: 1, rows: make(map[int64]domain.Feedback)}
}

func (r *FakeFeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	feedback.ID = r.nextID
	r.nextID++
	feedback.CreatedAt = time.Now()
	r.rows[feedback.ID] = *feedback
	return nil
}

func (r *FakeFeedbackRepo) GetByID(_ context.Context, id int64) (*domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[id]; ok {
		copied := row
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *FakeFeedbackRepo) List(_ context.Context, approved *bool) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Feedback
	for _, row := range r.rows {
		if approved != nil && row.IsApproved != *approved {
			continue
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *FakeFeedbackRepo) SetApproval(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[feedback.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.rows[feedback.ID] = *feedback
	return nil
}

func (r *FakeFeedbackRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, id)
	return nil
}
