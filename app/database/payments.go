package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PORTABLEA02/primaire2/app/finance"
	"github.com/PORTABLEA02/primaire2/app/models"
)

// PaymentFilters represents filtering options for the payments feed.
type PaymentFilters struct {
	StudentID string
	Search    string // student name or reference number
	Method    string
	Type      string
	Status    string
	From      time.Time
	To        time.Time
	Limit     int
}

const paymentColumns = `p.id, p.student_id, p.amount, p.payment_method, p.payment_type,
	p.payment_date, p.period_description, p.reference_number, p.mobile_number,
	p.bank_details, p.status, p.notes, p.recorded_by, p.created_at,
	s.first_name, s.last_name, c.name, l.name`

const paymentJoins = `FROM payments p
	JOIN students s ON p.student_id = s.id
	LEFT JOIN classes c ON s.class_id = c.id
	LEFT JOIN levels l ON c.level_id = l.id`

// scanPayment maps one joined row into a typed Payment. Rows that violate the
// ledger's invariants (non-positive amount, unknown enum value) are rejected
// here so nothing untyped flows further up.
func scanPayment(rows *sql.Rows) (*models.Payment, error) {
	p := &models.Payment{}
	var method, ptype, status string
	var firstName, lastName, className, levelName sql.NullString
	err := rows.Scan(
		&p.ID, &p.StudentID, &p.Amount, &method, &ptype,
		&p.PaymentDate, &p.PeriodDescription, &p.ReferenceNumber, &p.MobileNumber,
		&p.BankDetails, &status, &p.Notes, &p.RecordedBy, &p.CreatedAt,
		&firstName, &lastName, &className, &levelName,
	)
	if err != nil {
		return nil, err
	}

	p.Method = models.PaymentMethod(method)
	p.Type = models.PaymentType(ptype)
	p.Status = models.PaymentStatus(status)
	if p.Amount <= 0 || !p.Method.Valid() || !p.Type.Valid() || !p.Status.Valid() {
		return nil, fmt.Errorf("malformed payment row %s", p.ID)
	}

	if firstName.Valid && lastName.Valid {
		p.StudentName = firstName.String + " " + lastName.String
	}
	p.ClassName = className.String
	p.LevelName = levelName.String
	return p, nil
}

// GetStudentPayments retrieves all payments for one student, most recent
// first. No records is not an error: the result is simply empty.
func GetStudentPayments(db *sql.DB, studentID string) ([]models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.student_id = $1
		ORDER BY p.payment_date DESC, p.created_at DESC`, paymentColumns, paymentJoins)

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, dataUnavailable("get student payments", err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, dataUnavailable("get student payments", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("get student payments", err)
	}
	return payments, nil
}

// GetPayments retrieves the payments feed with optional filters, most recent
// first. A zero Limit means no limit.
func GetPayments(db *sql.DB, f PaymentFilters) ([]models.Payment, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE 1=1", paymentColumns, paymentJoins)
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.StudentID != "" {
		query += " AND p.student_id = " + arg(f.StudentID)
	}
	if f.Method != "" {
		query += " AND p.payment_method = " + arg(f.Method)
	}
	if f.Type != "" {
		query += " AND p.payment_type = " + arg(f.Type)
	}
	if f.Status != "" {
		query += " AND p.status = " + arg(f.Status)
	}
	if !f.From.IsZero() {
		query += " AND p.payment_date >= " + arg(f.From)
	}
	if !f.To.IsZero() {
		query += " AND p.payment_date < " + arg(f.To)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		ph := arg(pattern)
		query += fmt.Sprintf(` AND (s.first_name || ' ' || s.last_name ILIKE %s
			OR COALESCE(p.reference_number, '') ILIKE %s)`, ph, ph)
	}

	query += " ORDER BY p.payment_date DESC, p.created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, dataUnavailable("get payments", err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, dataUnavailable("get payments", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("get payments", err)
	}
	return payments, nil
}

// GetPaymentByID retrieves a single payment with its joined display fields.
func GetPaymentByID(db *sql.DB, paymentID string) (*models.Payment, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.id = $1", paymentColumns, paymentJoins)
	rows, err := db.Query(query, paymentID)
	if err != nil {
		return nil, dataUnavailable("get payment", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, dataUnavailable("get payment", err)
		}
		return nil, sql.ErrNoRows
	}
	p, err := scanPayment(rows)
	if err != nil {
		return nil, dataUnavailable("get payment", err)
	}
	return p, nil
}

// CreatePayment inserts a new payment record. The insert is a single
// statement issued at most once; an ambiguous failure is surfaced to the
// caller instead of retried so a payment can never be recorded twice.
func CreatePayment(db *sql.DB, p *models.Payment) error {
	if p.Status == "" {
		p.Status = models.PaymentConfirmed
	}
	query := `INSERT INTO payments (student_id, amount, payment_method, payment_type,
			payment_date, period_description, reference_number, mobile_number,
			bank_details, status, notes, recorded_by)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		  RETURNING id, created_at`
	err := db.QueryRow(query,
		p.StudentID, p.Amount, string(p.Method), string(p.Type),
		p.PaymentDate, p.PeriodDescription, p.ReferenceNumber, p.MobileNumber,
		p.BankDetails, string(p.Status), p.Notes, p.RecordedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return dataUnavailable("create payment", err)
	}
	return nil
}

// UpdatePaymentStatus applies an administrative status transition. Only
// pending payments may move, to Confirmé or Annulé.
func UpdatePaymentStatus(db *sql.DB, paymentID string, status models.PaymentStatus) error {
	result, err := db.Exec(
		`UPDATE payments SET status = $1 WHERE id = $2 AND status = $3`,
		string(status), paymentID, string(models.PaymentPending),
	)
	if err != nil {
		return dataUnavailable("update payment status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return dataUnavailable("update payment status", err)
	}
	if affected == 0 {
		// Distinguish a missing payment from one past its pending window.
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)`, paymentID).Scan(&exists); err != nil {
			return dataUnavailable("update payment status", err)
		}
		if !exists {
			return sql.ErrNoRows
		}
		return ErrInvalidTransition
	}
	return nil
}

// DeletePayment removes a payment record for good. There is no soft delete
// for payments; the administrative UI asks for confirmation first.
func DeletePayment(db *sql.DB, paymentID string) error {
	result, err := db.Exec(`DELETE FROM payments WHERE id = $1`, paymentID)
	if err != nil {
		return dataUnavailable("delete payment", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return dataUnavailable("delete payment", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetFeePlanForClass resolves a class to the level that carries its annual
// fee.
func GetFeePlanForClass(db *sql.DB, classID string) (*models.Level, error) {
	level := &models.Level{}
	query := `SELECT l.id, l.name, l.annual_fee
		  FROM levels l JOIN classes c ON c.level_id = l.id
		  WHERE c.id = $1`
	err := db.QueryRow(query, classID).Scan(&level.ID, &level.Name, &level.AnnualFee)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, dataUnavailable("get fee plan", err)
	}
	return level, nil
}

// OutstandingFilters narrows the outstanding-students listing. Level is a
// case-sensitive exact match on the level name; Bracket is one of "low"
// (< 100 000), "medium" (100 000 to 299 999) or "high" (>= 300 000).
type OutstandingFilters struct {
	Level   string
	Bracket string
	Search  string
}

func bracketMatches(bracket string, outstanding int64) bool {
	switch bracket {
	case "low":
		return outstanding < 100000
	case "medium":
		return outstanding >= 100000 && outstanding < 300000
	case "high":
		return outstanding >= 300000
	default:
		return true
	}
}

// GetOutstandingStudents returns every active student with their balance
// fields attached. The paid/outstanding derivation is done exclusively by
// finance.ComputeBalance on the confirmed sums fetched here, so the numbers
// can never drift from the ones shown elsewhere.
func GetOutstandingStudents(db *sql.DB, f OutstandingFilters) ([]finance.OutstandingStudent, error) {
	query := `SELECT s.id, s.first_name, s.last_name,
			COALESCE(s.parent_phone, ''), COALESCE(s.parent_email, ''),
			COALESCE(c.name, ''), COALESCE(l.name, ''), COALESCE(l.annual_fee, 0)
		  FROM students s
		  LEFT JOIN classes c ON s.class_id = c.id
		  LEFT JOIN levels l ON c.level_id = l.id
		  WHERE s.is_active = true`
	var args []interface{}
	if f.Level != "" {
		args = append(args, f.Level)
		query += fmt.Sprintf(" AND l.name = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND s.first_name || ' ' || s.last_name ILIKE $%d", len(args))
	}
	query += " ORDER BY s.last_name, s.first_name"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, dataUnavailable("get outstanding students", err)
	}
	defer rows.Close()

	type studentRow struct {
		student finance.OutstandingStudent
		fee     int64
	}
	var studentRows []studentRow
	for rows.Next() {
		var r studentRow
		err := rows.Scan(
			&r.student.StudentID, &r.student.FirstName, &r.student.LastName,
			&r.student.ParentPhone, &r.student.ParentEmail,
			&r.student.ClassName, &r.student.LevelName, &r.fee,
		)
		if err != nil {
			return nil, dataUnavailable("get outstanding students", err)
		}
		studentRows = append(studentRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("get outstanding students", err)
	}

	paid, err := confirmedTotals(db)
	if err != nil {
		return nil, err
	}

	students := make([]finance.OutstandingStudent, 0, len(studentRows))
	for _, r := range studentRows {
		plan := models.Level{Name: r.student.LevelName, AnnualFee: r.fee}
		payments := []models.Payment{{
			Amount: paid[r.student.StudentID],
			Status: models.PaymentConfirmed,
		}}
		if paid[r.student.StudentID] == 0 {
			payments = nil
		}
		r.student.StudentBalance = finance.ComputeBalance(plan, payments)
		if !bracketMatches(f.Bracket, r.student.OutstandingAmount) {
			continue
		}
		students = append(students, r.student)
	}
	return students, nil
}

// confirmedTotals sums confirmed payment amounts per student in one query.
func confirmedTotals(db *sql.DB) (map[string]int64, error) {
	rows, err := db.Query(
		`SELECT student_id, SUM(amount) FROM payments
		 WHERE status = $1 AND amount > 0
		 GROUP BY student_id`,
		string(models.PaymentConfirmed),
	)
	if err != nil {
		return nil, dataUnavailable("sum confirmed payments", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var id string
		var sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, dataUnavailable("sum confirmed payments", err)
		}
		totals[id] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, dataUnavailable("sum confirmed payments", err)
	}
	return totals, nil
}
