package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const principalKey = "auth_principal"

// CookieName is the login cookie holding "Bearer <token>".
const CookieName = "access_token"

// AuthMiddleware validates bearer tokens and loads the account they name.
// It is the first gate of the access-control chain; RequireActive and
// RequireAdmin build on the account it stores in the request locals.
type AuthMiddleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, accounts repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts}
}

// Handle enforces authentication for protected routes. Missing, malformed
// and expired tokens, and tokens naming a vanished account, all fail with
// the same 401; the cause is never surfaced to the caller.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr, ok := extractToken(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	username, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	account, err := m.accounts.GetByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("could not validate credentials")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, account)
	return c.Next()
}

// extractToken reads the bearer token from the Authorization header,
// falling back to the login cookie.
func extractToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		header = c.Cookies(CookieName)
	}
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AccountFromContext retrieves the authenticated account.
func AccountFromContext(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok
}
