package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// ContactHandler exposes the contact-form endpoint.
type ContactHandler struct {
	mail *service.MailService
}

// NewContactHandler constructs handler.
func NewContactHandler(mailService *service.MailService) *ContactHandler {
	return &ContactHandler{mail: mailService}
}

// SendEmail handles POST /contact/send-email. Public.
func (h *ContactHandler) SendEmail(c *fiber.Ctx) error {
	var req dto.ContactEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateContactRequest(req); err != nil {
		return err
	}

	status, err := h.mail.SendContactEmail(c.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	message := "Email sent successfully"
	if status == service.DeliveryStatusLogged {
		message = "Email logged successfully (SMTP not configured)"
	}
	return c.JSON(fiber.Map{"data": dto.ContactEmailResponse{Message: message, Status: status}})
}

func validateContactRequest(req dto.ContactEmailRequest) error {
	if len(req.Name) == 0 || len(req.Name) > 100 {
		return apperrors.NewValidationError("name must be 1-100 characters", map[string]any{"field": "name"})
	}
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("invalid email", map[string]any{"field": "email"})
	}
	if len(req.Subject) == 0 || len(req.Subject) > 200 {
		return apperrors.NewValidationError("subject must be 1-200 characters", map[string]any{"field": "subject"})
	}
	if len(req.Message) == 0 || len(req.Message) > 2000 {
		return apperrors.NewValidationError("message must be 1-2000 characters", map[string]any{"field": "message"})
	}
	return nil
}
