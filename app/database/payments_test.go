package database

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PORTABLEA02/primaire2/app/models"
)

func TestBracketMatches(t *testing.T) {
	tests := []struct {
		bracket     string
		outstanding int64
		want        bool
	}{
		{"low", 99999, true},
		{"low", 100000, false},
		{"medium", 100000, true},
		{"medium", 299999, true},
		{"medium", 300000, false},
		{"medium", 99999, false},
		{"high", 300000, true},
		{"high", 299999, false},
		{"", 5, true},
		{"", 5000000, true},
		{"unknown", 5, true}, // unrecognized bracket never filters
	}
	for _, tt := range tests {
		got := bracketMatches(tt.bracket, tt.outstanding)
		assert.Equal(t, tt.want, got, "bracketMatches(%q, %d)", tt.bracket, tt.outstanding)
	}
}

var paymentTestColumns = []string{
	"id", "student_id", "amount", "payment_method", "payment_type",
	"payment_date", "period_description", "reference_number", "mobile_number",
	"bank_details", "status", "notes", "recorded_by", "created_at",
	"first_name", "last_name", "class_name", "level_name",
}

func paymentRow(id string, amount int64, status string) []driver.Value {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "a3f1c6de-5b2a-4f0e-9c7d-1b2e3f4a5d6c", amount, "Espèces", "Scolarité",
		now, nil, nil, nil,
		nil, status, nil, nil, now,
		"Awa", "Diallo", "CE1 A", "CE1",
	}
}

func TestGetPaymentsFeed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(paymentTestColumns).
		AddRow(paymentRow("p1", 250000, "Confirmé")...).
		AddRow(paymentRow("p2", 50000, "En attente")...)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	payments, err := GetPayments(db, PaymentFilters{})
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, int64(250000), payments[0].Amount)
	assert.Equal(t, models.PaymentPending, payments[1].Status)
	assert.Equal(t, "Awa Diallo", payments[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A row violating the ledger's invariants must fail the whole read, never
// shrink the feed: callers can't tell a truncated result from a complete one.
func TestGetPaymentsMalformedRowFailsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(paymentTestColumns).
		AddRow(paymentRow("p1", 250000, "Confirmé")...).
		AddRow(paymentRow("p2", 50000, "confirmé")...) // unknown status value
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	payments, err := GetPayments(db, PaymentFilters{})
	assert.Nil(t, payments)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestGetPaymentsNonPositiveAmountFailsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(paymentTestColumns).
		AddRow(paymentRow("p1", -100, "Confirmé")...)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	_, err = GetPayments(db, PaymentFilters{})
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestGetStudentPaymentsMalformedRowFailsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(paymentTestColumns).
		AddRow(paymentRow("p1", 250000, "Payé")...) // unknown status value
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	payments, err := GetStudentPayments(db, "a3f1c6de-5b2a-4f0e-9c7d-1b2e3f4a5d6c")
	assert.Nil(t, payments)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestGetPaymentByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(paymentTestColumns).
		AddRow(paymentRow("p1", 250000, "Confirmé")...)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	p, err := GetPaymentByID(db, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, models.PaymentConfirmed, p.Status)
}

func TestGetPaymentByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(paymentTestColumns))

	_, err = GetPaymentByID(db, "p1")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestGetPaymentByIDMalformedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(paymentTestColumns).
		AddRow(paymentRow("p1", 0, "Confirmé")...)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	_, err = GetPaymentByID(db, "p1")
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
