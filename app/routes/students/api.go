package students

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PORTABLEA02/primaire2/app/database"
	"github.com/PORTABLEA02/primaire2/app/finance"
	"github.com/PORTABLEA02/primaire2/app/models"
)

// GetStudentsAPI lists active students with their balance fields attached.
// Same data as the outstanding listing, without the amount bracket filter:
// the student screen shows everyone, up to date or not.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	students, err := database.GetOutstandingStudents(db, database.OutstandingFilters{
		Level:  c.Query("level"),
		Search: c.Query("search"),
	})
	if err != nil {
		if errors.Is(err, database.ErrDataUnavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    students,
	})
}

// GetStudentAPI returns one student with their payment history and derived
// balance.
func GetStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	student, err := database.GetStudentByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		if errors.Is(err, database.ErrDataUnavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	payments, err := database.GetStudentPayments(db, student.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
	}

	var plan models.Level
	if student.ClassID != nil {
		p, err := database.GetFeePlanForClass(db, *student.ClassID)
		if err != nil && err != sql.ErrNoRows {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
		}
		if p != nil {
			plan = *p
		}
	}
	balance := finance.ComputeBalance(plan, payments)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"student":  student,
			"payments": payments,
			"balance":  balance,
		},
	})
}
