package finance

import (
	"bytes"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PORTABLEA02/primaire2/app/database"
	appfinance "github.com/PORTABLEA02/primaire2/app/finance"
	"github.com/PORTABLEA02/primaire2/app/models"
)

// dbError maps accessor failures to HTTP errors. A data-layer outage is a
// 503 so the frontend can show its loading-failed state instead of an empty
// dashboard.
func dbError(err error) error {
	if errors.Is(err, database.ErrDataUnavailable) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Data source unavailable")
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Internal error")
}

// paymentID extracts and checks the :id route parameter. Rejecting malformed
// IDs here keeps garbage out of the SQL layer.
func paymentID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}
	return id, nil
}

func paymentFiltersFromQuery(c *fiber.Ctx) database.PaymentFilters {
	f := database.PaymentFilters{
		StudentID: c.Query("student_id"),
		Search:    c.Query("search"),
		Method:    c.Query("method"),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		Limit:     c.QueryInt("limit", 50),
	}
	if c.Query("period") == "month" {
		f.From, f.To = appfinance.MonthWindow(time.Now())
	}
	return f
}

// GetPaymentsAPI returns the recent payments feed with optional filtering.
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	payments, err := database.GetPayments(db, paymentFiltersFromQuery(c))
	if err != nil {
		return dbError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
	})
}

// GetPaymentAPI returns a specific payment by ID.
func GetPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := paymentID(c)
	if err != nil {
		return err
	}

	payment, err := database.GetPaymentByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return dbError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// CreatePaymentAPI records a new payment. Validation failures never reach
// the database; the insert itself is issued exactly once and not retried.
func CreatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req appfinance.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := appfinance.ValidatePayment(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  errs,
		})
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment date")
	}

	payment := &models.Payment{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Method:      req.Method,
		Type:        req.Type,
		PaymentDate: paymentDate,
		Status:      models.PaymentConfirmed,
	}
	if req.PeriodDescription != "" {
		payment.PeriodDescription = &req.PeriodDescription
	}
	if req.ReferenceNumber != "" {
		payment.ReferenceNumber = &req.ReferenceNumber
	}
	if req.MobileNumber != "" {
		payment.MobileNumber = &req.MobileNumber
	}
	if req.BankDetails != "" {
		payment.BankDetails = &req.BankDetails
	}
	if req.Notes != "" {
		payment.Notes = &req.Notes
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		payment.RecordedBy = &userID
	}

	if err := database.CreatePayment(db, payment); err != nil {
		return dbError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payment,
		"message": "Payment recorded successfully",
	})
}

// UpdatePaymentStatusAPI confirms or cancels a pending payment.
func UpdatePaymentStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	type statusRequest struct {
		Status models.PaymentStatus `json:"status"`
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Status != models.PaymentConfirmed && req.Status != models.PaymentCancelled {
		return fiber.NewError(fiber.StatusBadRequest, "Status must be Confirmé or Annulé")
	}

	id, err := paymentID(c)
	if err != nil {
		return err
	}

	if err := database.UpdatePaymentStatus(db, id, req.Status); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		if errors.Is(err, database.ErrInvalidTransition) {
			return fiber.NewError(fiber.StatusConflict, "Payment is no longer pending")
		}
		return dbError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment status updated successfully",
	})
}

// DeletePaymentAPI hard-deletes a payment. Irreversible.
func DeletePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := paymentID(c)
	if err != nil {
		return err
	}

	if err := database.DeletePayment(db, id); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return dbError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment deleted successfully",
	})
}

func outstandingFiltersFromQuery(c *fiber.Ctx) database.OutstandingFilters {
	return database.OutstandingFilters{
		Level:   c.Query("level"),
		Bracket: c.Query("bracket"),
		Search:  c.Query("search"),
	}
}

// GetOutstandingAPI returns all active students with their balance fields
// attached, optionally narrowed by level, amount bracket or name search.
func GetOutstandingAPI(c *fiber.Ctx, db *sql.DB) error {
	students, err := database.GetOutstandingStudents(db, outstandingFiltersFromQuery(c))
	if err != nil {
		return dbError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    students,
	})
}

// GetFinanceStatsAPI returns the cohort statistics for the finance dashboard.
// period=month limits the revenue figures to the current month; balances are
// always a full-year view.
func GetFinanceStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	students, err := database.GetOutstandingStudents(db, database.OutstandingFilters{})
	if err != nil {
		return dbError(err)
	}

	var f database.PaymentFilters
	if c.Query("period", "month") == "month" {
		f.From, f.To = appfinance.MonthWindow(time.Now())
	}
	payments, err := database.GetPayments(db, f)
	if err != nil {
		return dbError(err)
	}

	cohort := make([]appfinance.StudentLevel, len(students))
	for i, s := range students {
		cohort[i] = appfinance.StudentLevel{Balance: s.StudentBalance, Level: s.LevelName}
	}
	stats := appfinance.Aggregate(cohort, payments)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_revenue":        stats.TotalRevenue,
			"total_outstanding":    stats.TotalOutstanding,
			"collection_rate":      stats.CollectionRate * 100,
			"transaction_count":    stats.TransactionCount,
			"payment_methods":      stats.PaymentMethods,
			"payment_types":        stats.PaymentTypes,
			"outstanding_by_level": stats.OutstandingByLevel,
			"skipped_records":      stats.SkippedRecords,
			"students_total":       len(students),
		},
	})
}

// ExportPaymentsAPI streams the filtered payments feed as CSV.
func ExportPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	f := paymentFiltersFromQuery(c)
	f.Limit = 0 // exports are never truncated
	payments, err := database.GetPayments(db, f)
	if err != nil {
		return dbError(err)
	}

	var buf bytes.Buffer
	if err := appfinance.WritePaymentsCSV(&buf, payments); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="`+appfinance.ExportFileName("paiements", time.Now())+`"`)
	return c.Send(buf.Bytes())
}

// ExportOutstandingAPI streams the outstanding-payments listing as CSV.
func ExportOutstandingAPI(c *fiber.Ctx, db *sql.DB) error {
	students, err := database.GetOutstandingStudents(db, outstandingFiltersFromQuery(c))
	if err != nil {
		return dbError(err)
	}

	// The export only lists students owing money.
	owing := make([]appfinance.OutstandingStudent, 0, len(students))
	for _, s := range students {
		if s.OutstandingAmount > 0 {
			owing = append(owing, s)
		}
	}

	var buf bytes.Buffer
	if err := appfinance.WriteOutstandingCSV(&buf, owing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="`+appfinance.ExportFileName("impayes", time.Now())+`"`)
	return c.Send(buf.Bytes())
}
