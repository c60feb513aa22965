package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// FeedbackHandler exposes the moderation queue endpoints.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: feedbackService}
}

// Submit handles POST /feedback. Public.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.FeedbackCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	feedback, err := h.service.Submit(c.Context(), service.FeedbackInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Rating:  req.Rating,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(feedback)})
}

// ListApproved handles GET /feedback/approved. Public.
func (h *FeedbackHandler) ListApproved(c *fiber.Ctx) error {
	entries, err := h.service.ListApproved(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feedbackItems(entries)})
}

// ListPending handles GET /feedback/pending. Admin only.
func (h *FeedbackHandler) ListPending(c *fiber.Ctx) error {
	entries, err := h.service.ListPending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feedbackItems(entries)})
}

// ListAll handles GET /feedback/all. Admin only.
func (h *FeedbackHandler) ListAll(c *fiber.Ctx) error {
	entries, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feedbackItems(entries)})
}

// SetApproval handles PATCH /feedback/:id/approve. Admin only.
func (h *FeedbackHandler) SetApproval(c *fiber.Ctx) error {
	account, ok := auth.AccountFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.FeedbackApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	feedback, err := h.service.SetApproval(c.Context(), id, req.Approve, account.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFeedbackResponse(feedback)})
}

// Delete handles DELETE /feedback/:id. Admin only.
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Feedback deleted successfully"}})
}

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"field": "id"})
	}
	return id, nil
}

func feedbackItems(entries []domain.Feedback) []dto.FeedbackResponse {
	items := make([]dto.FeedbackResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewFeedbackResponse(&entries[i]))
	}
	return items
}
