package finance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PORTABLEA02/primaire2/app/config"
	"github.com/PORTABLEA02/primaire2/app/routes/auth"
)

// SetupFinanceRoutes sets up the finance routes
func SetupFinanceRoutes(app *fiber.App) {
	api := app.Group("/api/finance")
	api.Use(auth.AuthMiddleware)

	api.Get("/payments", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	api.Post("/payments", func(c *fiber.Ctx) error {
		return CreatePaymentAPI(c, config.GetDB())
	})

	api.Get("/payments/:id", func(c *fiber.Ctx) error {
		return GetPaymentAPI(c, config.GetDB())
	})

	api.Patch("/payments/:id/status", func(c *fiber.Ctx) error {
		return UpdatePaymentStatusAPI(c, config.GetDB())
	})

	api.Delete("/payments/:id", func(c *fiber.Ctx) error {
		return DeletePaymentAPI(c, config.GetDB())
	})

	api.Get("/outstanding", func(c *fiber.Ctx) error {
		return GetOutstandingAPI(c, config.GetDB())
	})

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetFinanceStatsAPI(c, config.GetDB())
	})

	api.Get("/export/payments", func(c *fiber.Ctx) error {
		return ExportPaymentsAPI(c, config.GetDB())
	})

	api.Get("/export/outstanding", func(c *fiber.Ctx) error {
		return ExportOutstandingAPI(c, config.GetDB())
	})
}
