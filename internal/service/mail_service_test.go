package service

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/testutil"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

func seedPortfolio(t *testing.T, repo *testutil.FakePortfolioRepo) {
	t.Helper()
	portfolio := &domain.Portfolio{Name: "default", Language: "en", Data: domain.DefaultPortfolioData()}
	require.NoError(t, repo.Create(context.Background(), portfolio))
}

func contactInput() ContactInput {
	return ContactInput{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "I would like to talk.",
	}
}

func TestMailService_LogsWhenUnconfigured(t *testing.T) {
	repo := testutil.NewFakePortfolioRepo()
	seedPortfolio(t, repo)

	svc := NewMailService(config.SMTPConfig{}, repo, zap.NewNop())
	sendCalled := false
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		sendCalled = true
		return nil
	}

	status, err := svc.SendContactEmail(context.Background(), contactInput())
	require.NoError(t, err)
	assert.Equal(t, DeliveryStatusLogged, status)
	assert.False(t, sendCalled, "unconfigured SMTP must never attempt delivery")
}

func TestMailService_SendsWhenConfigured(t *testing.T) {
	repo := testutil.NewFakePortfolioRepo()
	seedPortfolio(t, repo)

	cfg := config.SMTPConfig{Host: "mail.example.com", Port: 587, Username: "u", Password: "p", FromEmail: "owner@example.com"}
	svc := NewMailService(cfg, repo, zap.NewNop())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	status, err := svc.SendContactEmail(context.Background(), contactInput())
	require.NoError(t, err)
	assert.Equal(t, DeliveryStatusSent, status)
	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.Equal(t, "owner@example.com", gotFrom)
	assert.Equal(t, []string{"your@email.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Portfolio Contact: Hello")
	assert.Contains(t, string(gotMsg), "Reply-To: visitor@example.com")
}

func TestMailService_DeliveryFailure(t *testing.T) {
	repo := testutil.NewFakePortfolioRepo()
	seedPortfolio(t, repo)

	cfg := config.SMTPConfig{Host: "mail.example.com", Port: 587, Username: "u", Password: "p"}
	svc := NewMailService(cfg, repo, zap.NewNop())
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	_, err := svc.SendContactEmail(context.Background(), contactInput())
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "MAIL_DELIVERY_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Message, "connection refused")
}

func TestMailService_MissingPortfolio(t *testing.T) {
	svc := NewMailService(config.SMTPConfig{}, testutil.NewFakePortfolioRepo(), zap.NewNop())

	_, err := svc.SendContactEmail(context.Background(), contactInput())
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
