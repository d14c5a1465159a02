package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PORTABLEA02/primaire2/app/config"
	"github.com/PORTABLEA02/primaire2/app/routes/auth"
)

// SetupDashboardRoutes sets up the dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, config.GetDB())
	})
}
