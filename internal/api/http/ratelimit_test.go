package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portfolio-service/internal/api/http"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/persistence"
)

func newLimiterApp(t *testing.T, addr string, perMin int) *fiber.App {
	t.Helper()

	client := &persistence.Redis{Client: goredis.NewClient(&goredis.Options{Addr: addr})}
	t.Cleanup(client.Close)

	limiter := httptransport.NewRateLimiter(config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: perMin,
	}, client, zap.NewNop())
	require.NotNil(t, limiter)

	app := fiber.New()
	app.Post("/submit", limiter, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusCreated)
	})
	return app
}

func limiterRequest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/submit", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestRateLimiter_UnderLimitPasses(t *testing.T) {
	mr := miniredis.RunT(t)
	app := newLimiterApp(t, mr.Addr(), 3)

	for i := 0; i < 3; i++ {
		resp := limiterRequest(t, app)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}

func TestRateLimiter_OverLimitRejected(t *testing.T) {
	mr := miniredis.RunT(t)
	app := newLimiterApp(t, mr.Addr(), 2)

	for i := 0; i < 2; i++ {
		resp := limiterRequest(t, app)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := limiterRequest(t, app)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	mr := miniredis.RunT(t)
	app := newLimiterApp(t, mr.Addr(), 1)

	first := limiterRequest(t, app)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	blocked := limiterRequest(t, app)
	require.Equal(t, http.StatusTooManyRequests, blocked.StatusCode)

	// The counter key must carry a TTL even though the second request was
	// rejected, so the window cannot outlive itself.
	mr.FastForward(61 * time.Second)

	after := limiterRequest(t, app)
	assert.Equal(t, http.StatusCreated, after.StatusCode)
}

func TestRateLimiter_FailsOpenWhenRedisUnreachable(t *testing.T) {
	// Nothing listens on this address; every limiter call errors.
	app := newLimiterApp(t, "127.0.0.1:1", 1)

	for i := 0; i < 5; i++ {
		resp := limiterRequest(t, app)
		assert.Equal(t, http.StatusCreated, resp.StatusCode, "unreachable redis must never block traffic")
	}
}

func TestRateLimiter_DisabledReturnsNil(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &persistence.Redis{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}
	t.Cleanup(client.Close)

	assert.Nil(t, httptransport.NewRateLimiter(config.RateLimitConfig{Enabled: false, RequestsPerMin: 10}, client, zap.NewNop()))
	assert.Nil(t, httptransport.NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMin: 0}, client, zap.NewNop()))
	assert.Nil(t, httptransport.NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMin: 10}, nil, zap.NewNop()))
}
