package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Portfolio      *handlers.PortfolioHandler
	Feedback       *handlers.FeedbackHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes. Protected routes run the gate chain
// authenticated -> active -> admin in order.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Health)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireActive(), cfg.Auth.Me)

	app.Get("/portfolio", cfg.Portfolio.Get)
	app.Put("/portfolio", cfg.AuthMiddleware.Handle, auth.RequireActive(), auth.RequireAdmin(), cfg.Portfolio.Update)
	app.Get("/portfolio/history", cfg.AuthMiddleware.Handle, auth.RequireActive(), auth.RequireAdmin(), cfg.Portfolio.History)

	feedback := app.Group("/feedback")
	feedback.Post("/", limiter, cfg.Feedback.Submit)
	feedback.Get("/approved", cfg.Feedback.ListApproved)
	feedback.Get("/pending", cfg.AuthMiddleware.Handle, auth.RequireActive(), auth.RequireAdmin(), cfg.Feedback.ListPending)
	feedback.Get("/all", cfg.AuthMiddleware.Handle, auth.RequireActive(), auth.RequireAdmin(), cfg.Feedback.ListAll)
	feedback.Patch("/:id/approve", cfg.AuthMiddleware.Handle, auth.RequireActive(), auth.RequireAdmin(), cfg.Feedback.SetApproval)
	feedback.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireActive(), auth.RequireAdmin(), cfg.Feedback.Delete)

	app.Post("/contact/send-email", limiter, cfg.Contact.SendEmail)
}
