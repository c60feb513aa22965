package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse standard response for login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AccountResponse is the public view of an account. Never carries the
// password hash.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		IsActive:  account.IsActive,
		IsAdmin:   account.IsAdmin,
		CreatedAt: account.CreatedAt,
	}
}
