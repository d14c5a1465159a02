package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PORTABLEA02/primaire2/app/config"
	"github.com/PORTABLEA02/primaire2/app/routes/auth"
)

// SetupStudentsRoutes sets up the students routes
func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetStudentAPI(c, config.GetDB())
	})
}
