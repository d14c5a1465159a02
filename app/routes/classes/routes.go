package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PORTABLEA02/primaire2/app/config"
	"github.com/PORTABLEA02/primaire2/app/routes/auth"
)

// SetupClassesRoutes sets up the classes routes
func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})

	levels := app.Group("/api/levels")
	levels.Use(auth.AuthMiddleware)

	levels.Get("/", func(c *fiber.Ctx) error {
		return GetLevelsAPI(c, config.GetDB())
	})
}
