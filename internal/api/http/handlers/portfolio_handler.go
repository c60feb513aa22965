package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// PortfolioHandler exposes the document endpoints.
type PortfolioHandler struct {
	service *service.PortfolioService
}

// NewPortfolioHandler constructs handler.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: portfolioService}
}

// Get handles GET /portfolio. Public; creates the default document when
// none exists.
func (h *PortfolioHandler) Get(c *fiber.Ctx) error {
	portfolio, err := h.service.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPortfolioResponse(portfolio)})
}

// Update handles PUT /portfolio. Admin only.
func (h *PortfolioHandler) Update(c *fiber.Ctx) error {
	account, ok := auth.AccountFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	var req dto.PortfolioUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	portfolio, err := h.service.Update(c.Context(), req.Data, account.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPortfolioResponse(portfolio)})
}

// History handles GET /portfolio/history. Admin only. Query: skip, limit.
func (h *PortfolioHandler) History(c *fiber.Ctx) error {
	skip := parseQueryInt(c, "skip", 0)
	limit := parseQueryInt(c, "limit", 0)

	entries, err := h.service.History(c.Context(), skip, limit)
	if err != nil {
		return err
	}

	items := make([]dto.PortfolioHistoryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewPortfolioHistoryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseQueryInt(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
