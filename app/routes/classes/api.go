package classes

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/PORTABLEA02/primaire2/app/database"
)

// GetClassesAPI lists active classes with their level and annual fee.
func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	classes, err := database.GetClasses(db)
	if err != nil {
		if errors.Is(err, database.ErrDataUnavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    classes,
	})
}

// GetLevelsAPI lists the configured levels and their annual tuition fees.
func GetLevelsAPI(c *fiber.Ctx, db *sql.DB) error {
	levels, err := database.GetLevels(db)
	if err != nil {
		if errors.Is(err, database.ErrDataUnavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch levels")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    levels,
	})
}
