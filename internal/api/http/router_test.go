package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/portfolio-service/internal/api/http"
	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/testutil"
)

type testEnv struct {
	app      *fiber.App
	auth     *service.AuthService
	accounts *testutil.FakeAccountRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accounts := testutil.NewFakeAccountRepo()
	portfolios := testutil.NewFakePortfolioRepo()
	feedback := testutil.NewFakeFeedbackRepo()

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            bcrypt.MinCost,
	}, accounts)

	logger := zap.NewNop()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0, nil)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("portfolio-service", "test", &persistence.Postgres{}),
		Auth:           handlers.NewAuthHandler(authService),
		Portfolio:      handlers.NewPortfolioHandler(service.NewPortfolioService(portfolios)),
		Feedback:       handlers.NewFeedbackHandler(service.NewFeedbackService(feedback)),
		Contact:        handlers.NewContactHandler(service.NewMailService(config.SMTPConfig{}, portfolios, logger)),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), accounts),
	})

	return &testEnv{app: app, auth: authService, accounts: accounts}
}

func (e *testEnv) registerUser(t *testing.T, username string, admin bool) string {
	t.Helper()

	account, err := e.auth.Register(context.Background(), username, username+"@example.com", "password123")
	require.NoError(t, err)

	if admin {
		account.IsAdmin = true
		require.NoError(t, e.accounts.Update(context.Background(), account))
	}

	token, _, err := e.auth.TokenManager().GenerateToken(username, 0)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, resp *http.Response) (code, message string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error.Code, envelope.Error.Message
}

func updateBody(data domain.PortfolioData) map[string]any {
	return map[string]any{"data": data}
}

func TestRoutes_MissingTokenChallenge(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPut, "/portfolio", "", updateBody(domain.DefaultPortfolioData()))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
}

func TestRoutes_InvalidTokenUniform(t *testing.T) {
	env := newTestEnv(t)

	garbage := env.request(t, http.MethodGet, "/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, garbage.StatusCode)

	// Token naming an account that no longer exists fails identically.
	ghost, _, err := env.auth.TokenManager().GenerateToken("ghost", 0)
	require.NoError(t, err)
	vanished := env.request(t, http.MethodGet, "/auth/me", ghost, nil)
	assert.Equal(t, http.StatusUnauthorized, vanished.StatusCode)
	assert.Equal(t, "Bearer", vanished.Header.Get(fiber.HeaderWWWAuthenticate))
}

func TestRoutes_NonAdminForbiddenOnAdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "user", false)

	put := env.request(t, http.MethodPut, "/portfolio", token, updateBody(domain.DefaultPortfolioData()))
	assert.Equal(t, http.StatusForbidden, put.StatusCode)

	history := env.request(t, http.MethodGet, "/portfolio/history", token, nil)
	assert.Equal(t, http.StatusForbidden, history.StatusCode)

	del := env.request(t, http.MethodDelete, "/feedback/1", token, nil)
	assert.Equal(t, http.StatusForbidden, del.StatusCode)

	// The same token passes the public routes.
	get := env.request(t, http.MethodGet, "/portfolio", token, nil)
	assert.Equal(t, http.StatusOK, get.StatusCode)

	submit := env.request(t, http.MethodPost, "/feedback/", token, map[string]any{"name": "V", "message": "hi"})
	assert.Equal(t, http.StatusCreated, submit.StatusCode)

	me := env.request(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, me.StatusCode)
}

func TestRoutes_DisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "sleepy", false)

	account, err := env.accounts.GetByUsername(context.Background(), "sleepy")
	require.NoError(t, err)
	account.IsActive = false
	require.NoError(t, env.accounts.Update(context.Background(), account))

	resp := env.request(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "disabled account is distinct from invalid token")
}

func TestRoutes_AdminPortfolioFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "boss", true)

	// First read lazily creates the default document.
	get := env.request(t, http.MethodGet, "/portfolio", "", nil)
	require.Equal(t, http.StatusOK, get.StatusCode)

	var doc struct {
		ID   int64                `json:"id"`
		Data domain.PortfolioData `json:"data"`
	}
	decodeData(t, get, &doc)
	assert.Equal(t, domain.DefaultPortfolioData(), doc.Data)

	updated := doc.Data
	updated.Hero.Headline = "Shipped"
	put := env.request(t, http.MethodPut, "/portfolio", token, updateBody(updated))
	require.Equal(t, http.StatusOK, put.StatusCode)

	history := env.request(t, http.MethodGet, "/portfolio/history", token, nil)
	require.Equal(t, http.StatusOK, history.StatusCode)

	var entries []struct {
		Data domain.PortfolioData `json:"data"`
	}
	decodeData(t, history, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.DefaultPortfolioData(), entries[0].Data)
}

func TestRoutes_FeedbackModerationFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "boss", true)

	submit := env.request(t, http.MethodPost, "/feedback/", "", map[string]any{"name": "V", "message": "great", "rating": 4})
	require.Equal(t, http.StatusCreated, submit.StatusCode)

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, submit, &created)

	badRating := env.request(t, http.MethodPost, "/feedback/", "", map[string]any{"name": "V", "message": "bad", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, badRating.StatusCode)

	approve := env.request(t, http.MethodPatch, "/feedback/1/approve", token, map[string]any{"approve": true})
	require.Equal(t, http.StatusOK, approve.StatusCode)

	approved := env.request(t, http.MethodGet, "/feedback/approved", "", nil)
	require.Equal(t, http.StatusOK, approved.StatusCode)
	var list []struct {
		ID         int64 `json:"id"`
		IsApproved bool  `json:"is_approved"`
	}
	decodeData(t, approved, &list)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsApproved)

	missing := env.request(t, http.MethodDelete, "/feedback/99", token, nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRoutes_LoginSetsCookieAndLogoutClearsIt(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice", false)

	login := env.request(t, http.MethodPost, "/auth/login", "", map[string]any{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, login.StatusCode)

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeData(t, login, &tokenResp)
	assert.Equal(t, "bearer", tokenResp.TokenType)
	assert.NotEmpty(t, tokenResp.AccessToken)

	var cookie *http.Cookie
	for _, c := range login.Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the access_token cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "Bearer "+tokenResp.AccessToken, cookie.Value)

	// Cookie works as a token transport.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	me, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, me.StatusCode)

	logout := env.request(t, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, logout.StatusCode)
	var cleared *http.Cookie
	for _, c := range logout.Cookies() {
		if c.Name == auth.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// The bearer token itself stays valid until expiry; logout only
	// clears the cookie.
	still := env.request(t, http.MethodGet, "/auth/me", tokenResp.AccessToken, nil)
	assert.Equal(t, http.StatusOK, still.StatusCode)
}

func TestRoutes_BadLogin(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice", false)

	resp := env.request(t, http.MethodPost, "/auth/login", "", map[string]any{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_RegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{"username": "alice", "email": "alice@example.com", "password": "password123"}
	first := env.request(t, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusCreated, first.StatusCode)

	second := env.request(t, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, second.StatusCode)
}

func TestRoutes_ContactEmailLoggedWithoutSMTP(t *testing.T) {
	env := newTestEnv(t)

	// Create the portfolio so the recipient can be resolved.
	get := env.request(t, http.MethodGet, "/portfolio", "", nil)
	require.Equal(t, http.StatusOK, get.StatusCode)

	resp := env.request(t, http.MethodPost, "/contact/send-email", "", map[string]any{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello",
		"message": "Hi there",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var delivery struct {
		Status string `json:"status"`
	}
	decodeData(t, resp, &delivery)
	assert.Equal(t, "logged", delivery.Status)
}

func TestRoutes_UnmatchedRequestsKeepEnvelope(t *testing.T) {
	env := newTestEnv(t)

	missing := env.request(t, http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	code, _ := decodeError(t, missing)
	assert.Equal(t, "NOT_FOUND", code)

	wrongMethod := env.request(t, http.MethodDelete, "/portfolio", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, wrongMethod.StatusCode)
	code, _ = decodeError(t, wrongMethod)
	assert.Equal(t, "METHOD_NOT_ALLOWED", code)
}

func TestRoutes_Health(t *testing.T) {
	env := newTestEnv(t)

	root := env.request(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, root.StatusCode)

	health := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
