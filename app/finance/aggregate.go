package finance

import (
	"time"

	"github.com/PORTABLEA02/primaire2/app/models"
)

// StudentLevel pairs a student's derived balance with the level they are
// enrolled at, which is all the aggregator needs to know about a student.
type StudentLevel struct {
	Balance StudentBalance
	Level   string
}

// LevelOutstanding is one bucket of the per-level outstanding breakdown.
type LevelOutstanding struct {
	Students int   `json:"students"`
	Amount   int64 `json:"amount"`
}

// CohortStats rolls up balances and payments across an arbitrary set of
// students, whether a class, a level or the whole school. CollectionRate is
// a fraction in [0, 1].
type CohortStats struct {
	TotalRevenue       int64                          `json:"total_revenue"`
	TotalOutstanding   int64                          `json:"total_outstanding"`
	CollectionRate     float64                        `json:"collection_rate"`
	TransactionCount   int                            `json:"transaction_count"`
	PaymentMethods     map[models.PaymentMethod]int64 `json:"payment_methods"`
	PaymentTypes       map[models.PaymentType]int64   `json:"payment_types"`
	OutstandingByLevel map[string]LevelOutstanding    `json:"outstanding_by_level"`
	SkippedRecords     int                            `json:"skipped_records"`
}

// levelUndefined buckets students whose class has no level attached.
const levelUndefined = "Non défini"

// Aggregate reduces student balances and payment records into CohortStats in
// a single pass over each input. The caller controls the revenue window by
// pre-filtering the payment sequence. Malformed payment records (non-positive
// amount) are excluded from every sum and counted in SkippedRecords instead
// of failing the whole report. Only confirmed payments enter the revenue and
// the method/type breakdowns. Students with nothing outstanding do not appear
// in OutstandingByLevel.
func Aggregate(students []StudentLevel, payments []models.Payment) CohortStats {
	stats := CohortStats{
		PaymentMethods:     make(map[models.PaymentMethod]int64),
		PaymentTypes:       make(map[models.PaymentType]int64),
		OutstandingByLevel: make(map[string]LevelOutstanding),
	}

	for _, p := range payments {
		if p.Amount <= 0 {
			stats.SkippedRecords++
			continue
		}
		if p.Status != models.PaymentConfirmed {
			continue
		}
		stats.TotalRevenue += p.Amount
		stats.TransactionCount++
		stats.PaymentMethods[p.Method] += p.Amount
		stats.PaymentTypes[p.Type] += p.Amount
	}

	upToDate := 0
	for _, s := range students {
		stats.TotalOutstanding += s.Balance.OutstandingAmount
		if s.Balance.OutstandingAmount == 0 {
			upToDate++
			continue
		}
		level := s.Level
		if level == "" {
			level = levelUndefined
		}
		bucket := stats.OutstandingByLevel[level]
		bucket.Students++
		bucket.Amount += s.Balance.OutstandingAmount
		stats.OutstandingByLevel[level] = bucket
	}

	if len(students) > 0 {
		stats.CollectionRate = float64(upToDate) / float64(len(students))
	}

	return stats
}

// MonthWindow returns the [start, end) bounds of the calendar month
// containing t, in t's location. Every monthly revenue figure derives its
// window from here.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
