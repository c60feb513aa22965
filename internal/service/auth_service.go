package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// AuthService coordinates registration, login and the admin bootstrap.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, accounts repository.AccountRepository) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new non-admin account. Duplicate username or email
// fails validation without touching the table.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewValidationError("username already registered", map[string]any{"field": "username"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", map[string]any{"field": "email"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      false,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login authenticates by username and password and issues a bearer token.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect username or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect username or password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.Username, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// EnsureAdmin reconciles the bootstrap administrator at startup: no-op when
// the configured username already exists, otherwise create it active and
// admin. A missing bootstrap password refuses startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig, logger *zap.Logger) error {
	if cfg.Password == "" {
		return errors.New("ADMIN_PASSWORD not set")
	}

	if _, err := s.accounts.GetByUsername(ctx, cfg.Username); err == nil {
		logger.Info("admin account already exists", zap.String("username", cfg.Username))
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.Account{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := s.accounts.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("admin account created", zap.String("username", cfg.Username))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
