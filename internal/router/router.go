package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/edugenius/edugenius-api/internal/config"
	"github.com/edugenius/edugenius-api/internal/handler"
	"github.com/edugenius/edugenius-api/internal/middleware"
	"github.com/edugenius/edugenius-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	MaterialHandler  *handler.MaterialHandler
	StudyPlanHandler *handler.StudyPlanHandler
	QuizHandler      *handler.QuizHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// AI-backed endpoints share a per-user limiter budget.
	aiLimiter := middleware.RateLimit("ai", 10, time.Minute)

	if deps.AuthHandler != nil {
		auth := app.Group("/api/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.UserHandler != nil {
		users := app.Group("/api/users", jwtMiddleware)
		users.Use("/learning-style", aiLimiter)
		deps.UserHandler.Register(users)
	}

	if deps.MaterialHandler != nil {
		materials := app.Group("/api/study/materials", jwtMiddleware)
		materials.Use("/upload", aiLimiter)
		deps.MaterialHandler.Register(materials)
	}

	if deps.StudyPlanHandler != nil {
		plans := app.Group("/api/study/plans", jwtMiddleware)
		plans.Use("/generate", aiLimiter)
		deps.StudyPlanHandler.Register(plans)
	}

	if deps.QuizHandler != nil {
		quizzes := app.Group("/api/quiz", jwtMiddleware)
		quizzes.Use("/generate", aiLimiter)
		quizzes.Use("/predict-grade", aiLimiter)
		deps.QuizHandler.Register(quizzes)
	}
}
