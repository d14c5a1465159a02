package dashboard

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PORTABLEA02/primaire2/app/database"
)

// GetDashboardStatsAPI returns the headline counts and financial figures for
// the admin dashboard.
func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetDashboardStats(db, time.Now())
	if err != nil {
		if errors.Is(err, database.ErrDataUnavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
