package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PORTABLEA02/primaire2/app/models"
)

func student(level string, fee, paid int64) StudentLevel {
	var payments []models.Payment
	if paid > 0 {
		payments = []models.Payment{payment(paid, models.PaymentConfirmed)}
	}
	return StudentLevel{
		Balance: ComputeBalance(models.Level{Name: level, AnnualFee: fee}, payments),
		Level:   level,
	}
}

func TestAggregateEmptyCohort(t *testing.T) {
	stats := Aggregate(nil, nil)

	assert.Equal(t, float64(0), stats.CollectionRate)
	assert.Equal(t, int64(0), stats.TotalRevenue)
	assert.Equal(t, int64(0), stats.TotalOutstanding)
	assert.Empty(t, stats.OutstandingByLevel)
	assert.Empty(t, stats.PaymentMethods)
	assert.Empty(t, stats.PaymentTypes)
}

func TestAggregateRevenueAndBreakdowns(t *testing.T) {
	payments := []models.Payment{
		{Amount: 250000, Method: models.MethodCash, Type: models.TypeTuition, Status: models.PaymentConfirmed},
		{Amount: 50000, Method: models.MethodMobileMoney, Type: models.TypeEnrollment, Status: models.PaymentConfirmed},
		{Amount: 25000, Method: models.MethodMobileMoney, Type: models.TypeCafeteria, Status: models.PaymentPending},
		{Amount: 100000, Method: models.MethodBankTransfer, Type: models.TypeTuition, Status: models.PaymentCancelled},
	}

	stats := Aggregate(nil, payments)

	assert.Equal(t, int64(300000), stats.TotalRevenue)
	assert.Equal(t, 2, stats.TransactionCount)
	assert.Equal(t, map[models.PaymentMethod]int64{
		models.MethodCash:        250000,
		models.MethodMobileMoney: 50000,
	}, stats.PaymentMethods)
	assert.Equal(t, map[models.PaymentType]int64{
		models.TypeTuition:    250000,
		models.TypeEnrollment: 50000,
	}, stats.PaymentTypes)
	assert.Equal(t, 0, stats.SkippedRecords)
}

// Malformed records are excluded from every sum and counted, never fatal.
func TestAggregateSkipsMalformedRecords(t *testing.T) {
	payments := []models.Payment{
		{Amount: 100000, Method: models.MethodCash, Type: models.TypeTuition, Status: models.PaymentConfirmed},
		{Amount: -5000, Method: models.MethodCash, Type: models.TypeTuition, Status: models.PaymentConfirmed},
		{Amount: 0, Method: models.MethodCash, Type: models.TypeOther, Status: models.PaymentConfirmed},
	}

	stats := Aggregate(nil, payments)

	assert.Equal(t, int64(100000), stats.TotalRevenue)
	assert.Equal(t, 1, stats.TransactionCount)
	assert.Equal(t, 2, stats.SkippedRecords)
	assert.Equal(t, int64(100000), stats.PaymentMethods[models.MethodCash])
}

func TestAggregateCollectionRate(t *testing.T) {
	students := []StudentLevel{
		student("CE1", 400000, 400000), // up to date
		student("CE1", 400000, 100000),
		student("CP", 350000, 0),
		student("CP", 350000, 500000), // overpaid, still up to date
	}

	stats := Aggregate(students, nil)

	assert.Equal(t, 0.5, stats.CollectionRate)
	assert.Equal(t, int64(300000+350000), stats.TotalOutstanding)
	// Overpayment never leaks a negative value into the totals.
	assert.GreaterOrEqual(t, stats.TotalOutstanding, int64(0))
	for _, bucket := range stats.OutstandingByLevel {
		assert.GreaterOrEqual(t, bucket.Amount, int64(0))
	}
}

// Students owing nothing do not appear in the per-level breakdown.
func TestAggregateOutstandingByLevel(t *testing.T) {
	students := []StudentLevel{
		student("CE1", 400000, 400000),
		student("CE1", 400000, 250000),
		student("CM2", 450000, 0),
		student("", 350000, 100000),
	}

	stats := Aggregate(students, nil)

	assert.Equal(t, map[string]LevelOutstanding{
		"CE1":        {Students: 1, Amount: 150000},
		"CM2":        {Students: 1, Amount: 450000},
		"Non défini": {Students: 1, Amount: 250000},
	}, stats.OutstandingByLevel)
}

// Aggregating the concatenation of two disjoint cohorts equals combining the
// two aggregates element-wise.
func TestAggregateAdditivity(t *testing.T) {
	cohortA := []StudentLevel{
		student("CI", 350000, 350000),
		student("CI", 350000, 200000),
		student("CE2", 400000, 0),
	}
	cohortB := []StudentLevel{
		student("CE2", 400000, 300000),
		student("CM1", 450000, 450000),
		student("CM1", 450000, 50000),
	}
	paymentsA := []models.Payment{
		{Amount: 350000, Method: models.MethodCash, Type: models.TypeTuition, Status: models.PaymentConfirmed},
		{Amount: 200000, Method: models.MethodMobileMoney, Type: models.TypeTuition, Status: models.PaymentConfirmed},
	}
	paymentsB := []models.Payment{
		{Amount: 300000, Method: models.MethodCash, Type: models.TypeTuition, Status: models.PaymentConfirmed},
		{Amount: 450000, Method: models.MethodBankTransfer, Type: models.TypeEnrollment, Status: models.PaymentConfirmed},
		{Amount: 50000, Method: models.MethodCash, Type: models.TypeCafeteria, Status: models.PaymentConfirmed},
	}

	statsA := Aggregate(cohortA, paymentsA)
	statsB := Aggregate(cohortB, paymentsB)
	combined := Aggregate(append(cohortA, cohortB...), append(paymentsA, paymentsB...))

	assert.Equal(t, statsA.TotalRevenue+statsB.TotalRevenue, combined.TotalRevenue)
	assert.Equal(t, statsA.TotalOutstanding+statsB.TotalOutstanding, combined.TotalOutstanding)
	assert.Equal(t, statsA.TransactionCount+statsB.TransactionCount, combined.TransactionCount)

	for level, bucket := range statsA.OutstandingByLevel {
		want := bucket
		if other, ok := statsB.OutstandingByLevel[level]; ok {
			want.Students += other.Students
			want.Amount += other.Amount
		}
		assert.Equal(t, want, combined.OutstandingByLevel[level], "level %s", level)
	}
	for level, bucket := range statsB.OutstandingByLevel {
		if _, ok := statsA.OutstandingByLevel[level]; !ok {
			assert.Equal(t, bucket, combined.OutstandingByLevel[level], "level %s", level)
		}
	}

	for method, amount := range statsA.PaymentMethods {
		assert.Equal(t, amount+statsB.PaymentMethods[method], combined.PaymentMethods[method])
	}
}

func TestMonthWindow(t *testing.T) {
	from, to := MonthWindow(time.Date(2026, time.September, 17, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), to)

	// December rolls over the year boundary.
	from, to = MonthWindow(time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}
