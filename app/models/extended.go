package models

// DashboardStats aggregates the headline numbers for the admin dashboard.
type DashboardStats struct {
	TotalStudents     int     `json:"total_students"`
	TotalClasses      int     `json:"total_classes"`
	TotalLevels       int     `json:"total_levels"`
	MonthlyRevenue    int64   `json:"monthly_revenue"`
	TotalRevenue      int64   `json:"total_revenue"`
	TotalOutstanding  int64   `json:"total_outstanding"`
	FeeCollectionRate float64 `json:"fee_collection_rate"`
	StudentsOwing     int     `json:"students_owing"`
}
