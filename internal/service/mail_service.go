package service

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// Delivery outcomes for the contact form.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusLogged = "logged"
)

// ContactInput is a contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type smtpSendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// MailService delivers contact-form submissions to the portfolio owner.
// Without a complete SMTP configuration it degrades to logging the message
// and reporting success.
type MailService struct {
	cfg        config.SMTPConfig
	portfolios repository.PortfolioRepository
	logger     *zap.Logger
	send       smtpSendFunc
}

// NewMailService builds the service.
func NewMailService(cfg config.SMTPConfig, portfolios repository.PortfolioRepository, logger *zap.Logger) *MailService {
	return &MailService{
		cfg:        cfg,
		portfolios: portfolios,
		logger:     logger,
		send:       smtp.SendMail,
	}
}

// SendContactEmail resolves the recipient from the stored portfolio and
// delivers (or logs) the submission. Returns the delivery status.
func (s *MailService) SendContactEmail(ctx context.Context, input ContactInput) (string, error) {
	portfolio, err := s.portfolios.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("portfolio", nil)
		}
		return "", err
	}

	recipient := portfolio.Data.Contact.Email
	if recipient == "" {
		return "", apperrors.NewValidationError("contact email not configured", nil)
	}

	from := s.cfg.FromEmail
	if from == "" {
		from = input.Email
	}
	body := buildContactMessage(from, recipient, input)

	if !s.cfg.Configured() {
		s.logger.Info("contact email logged (SMTP not configured)",
			zap.String("to", recipient),
			zap.String("from", input.Email),
			zap.String("subject", input.Subject),
			zap.String("message", input.Message),
		)
		return DeliveryStatusLogged, nil
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := s.send(addr, auth, from, []string{recipient}, body); err != nil {
		s.logger.Error("contact email delivery failed", zap.Error(err))
		return "", apperrors.NewMailDeliveryError(err)
	}
	return DeliveryStatusSent, nil
}

func buildContactMessage(from, to string, input ContactInput) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", input.Email)
	fmt.Fprintf(&b, "Subject: Portfolio Contact: %s\r\n", input.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "New contact form submission from your portfolio:\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", input.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", input.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n\r\n", input.Subject)
	fmt.Fprintf(&b, "Message:\r\n%s\r\n\r\n", input.Message)
	b.WriteString("---\r\n")
	fmt.Fprintf(&b, "Reply directly to this email to respond to %s.\r\n", input.Name)
	return []byte(b.String())
}
