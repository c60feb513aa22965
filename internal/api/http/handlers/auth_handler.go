package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("invalid email", map[string]any{"field": "email"})
	}

	account, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Login handles POST /auth/login. On success the bearer token is returned
// in the body and duplicated into an httponly lax cookie for browser
// clients.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	_, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "Bearer " + token,
		Expires:  exp,
		MaxAge:   int(time.Until(exp).Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"data": dto.TokenResponse{AccessToken: token, TokenType: "bearer"}})
}

// Logout handles POST /auth/logout. Only the cookie is cleared; a token
// already handed out stays valid via the Authorization header until its
// natural expiry. Intentional: there is no server-side revocation.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Successfully logged out"}})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account, ok := auth.AccountFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}
