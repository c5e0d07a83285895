package routes

import (
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/config"
	"github.com/CoderKavin/ibdaily-backend/internal/handlers"
	"github.com/CoderKavin/ibdaily-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	webhookHandler *handlers.WebhookHandler,
	cohortHandler *handlers.CohortHandler,
	submissionHandler *handlers.SubmissionHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	prefsHandler *handlers.PrefsHandler,
	questionHandler *handlers.QuestionHandler,
	adminHandler *handlers.AdminHandler,
	configHandler *handlers.ConfigHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Product rule constants, public and read-only
	api.Get("/config", configHandler.Get)

	// Auth — public, with a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Everything below requires a signed-in user.
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Post("/cohorts", cohortHandler.Create)
	protected.Post("/cohorts/:id/join", cohortHandler.Join)
	protected.Get("/cohorts/:id/status", cohortHandler.Status)

	protected.Post("/cohorts/:id/submissions", submissionHandler.Submit)
	protected.Get("/cohorts/:id/submissions/today", submissionHandler.Today)
	protected.Get("/cohorts/:id/streak", submissionHandler.Streak)
	protected.Get("/cohorts/:id/leaderboard", leaderboardHandler.Get)

	protected.Get("/prefs/reminders", prefsHandler.Get)
	protected.Put("/prefs/reminders", prefsHandler.Update)

	protected.Get("/questions/today", questionHandler.Today)

	// Admin ops (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/reminders/run", adminHandler.RunReminders)
	admin.Get("/logs", adminHandler.ListLogs)

	// Webhooks authenticate with a shared secret header, no JWT
	webhooks := api.Group("/webhooks")
	webhooks.Post("/revenuecat", webhookHandler.HandleRevenueCat)
}
