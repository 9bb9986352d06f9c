package http

import (
	"github.com/bienestar-escolar/backend/internal/config"
	"github.com/bienestar-escolar/backend/internal/http/handlers"
	"github.com/bienestar-escolar/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	studentHandler *handlers.StudentHandler,
	interventionHandler *handlers.InterventionHandler,
	commentHandler *handlers.CommentHandler,
	auditHandler *handlers.AuditHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.ObservabilityMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (login public, rate limited; refresh/logout need a principal)
	api.Post("/auth/login", middleware.RateLimitMiddleware(cfg.LoginRateLimit, cfg.LoginRateBurst), authHandler.Login)

	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Post("/auth/refresh", authHandler.Refresh)
	protected.Post("/auth/logout", authHandler.Logout)

	// Users
	protected.Get("/users", userHandler.List)
	protected.Post("/users", userHandler.Create)
	protected.Get("/users/:id", userHandler.Get)
	protected.Put("/users/:id", userHandler.Update)
	protected.Delete("/users/:id", userHandler.Delete)

	// Students (check-rut before :id so the literal segment wins)
	protected.Get("/students/check-rut/:rut", studentHandler.CheckRUT)
	protected.Get("/students", studentHandler.List)
	protected.Post("/students", studentHandler.Create)
	protected.Get("/students/:id", studentHandler.Get)
	protected.Put("/students/:id", studentHandler.Update)
	protected.Delete("/students/:id", studentHandler.Delete)

	// Interventions
	protected.Get("/interventions", interventionHandler.List)
	protected.Post("/interventions", interventionHandler.Create)
	protected.Get("/interventions/:id", interventionHandler.Get)
	protected.Put("/interventions/:id", interventionHandler.Update)
	protected.Delete("/interventions/:id", interventionHandler.Delete)

	// Intervention comments (author-only mutation)
	protected.Get("/intervention-comments", commentHandler.List)
	protected.Post("/intervention-comments", commentHandler.Create)
	protected.Get("/intervention-comments/:id", commentHandler.Get)
	protected.Put("/intervention-comments/:id", commentHandler.Update)
	protected.Delete("/intervention-comments/:id", commentHandler.Delete)

	// Audit trail: read-only, mutations answer 403
	protected.Get("/audit", auditHandler.List)
	protected.Post("/audit", auditHandler.Create)
	protected.Get("/audit/:id", auditHandler.Get)
	protected.Put("/audit/:id", auditHandler.Update)
	protected.Delete("/audit/:id", auditHandler.Delete)
}
