package database

import (
	"database/sql"
	"time"

	"github.com/PORTABLEA02/primaire2/app/finance"
	"github.com/PORTABLEA02/primaire2/app/models"
)

// GetDashboardStats returns the headline numbers for the admin dashboard.
// The financial figures come from the same ledger computations the finance
// screens use.
func GetDashboardStats(db *sql.DB, now time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow("SELECT COUNT(*) FROM students WHERE is_active = true").Scan(&stats.TotalStudents)
	if err != nil {
		return nil, dataUnavailable("count students", err)
	}

	err = db.QueryRow("SELECT COUNT(*) FROM classes WHERE is_active = true").Scan(&stats.TotalClasses)
	if err != nil {
		return nil, dataUnavailable("count classes", err)
	}

	err = db.QueryRow("SELECT COUNT(*) FROM levels WHERE deleted_at IS NULL").Scan(&stats.TotalLevels)
	if err != nil {
		return nil, dataUnavailable("count levels", err)
	}

	students, err := GetOutstandingStudents(db, OutstandingFilters{})
	if err != nil {
		return nil, err
	}

	monthStart, monthEnd := finance.MonthWindow(now)
	monthly, err := GetPayments(db, PaymentFilters{From: monthStart, To: monthEnd})
	if err != nil {
		return nil, err
	}
	all, err := GetPayments(db, PaymentFilters{})
	if err != nil {
		return nil, err
	}

	cohort := make([]finance.StudentLevel, len(students))
	for i, s := range students {
		cohort[i] = finance.StudentLevel{Balance: s.StudentBalance, Level: s.LevelName}
	}

	monthStats := finance.Aggregate(cohort, monthly)
	allStats := finance.Aggregate(cohort, all)

	stats.MonthlyRevenue = monthStats.TotalRevenue
	stats.TotalRevenue = allStats.TotalRevenue
	stats.TotalOutstanding = allStats.TotalOutstanding
	stats.FeeCollectionRate = allStats.CollectionRate * 100
	for _, bucket := range allStats.OutstandingByLevel {
		stats.StudentsOwing += bucket.Students
	}

	return stats, nil
}
