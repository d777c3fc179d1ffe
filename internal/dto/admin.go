package dto

import "github.com/shopspring/decimal"

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalInstructors int             `json:"totalInstructors"`
	TotalLearners    int             `json:"totalLearners"`
	TotalCourses     int             `json:"totalCourses"`
	ActiveCourses    int             `json:"activeCourses"`
	PlatformBalance  decimal.Decimal `json:"platformBalance"`
}

// TransactionStats aggregates the admin transaction feed.
type TransactionStats struct {
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	InstructorPayments decimal.Decimal `json:"instructorPayments"`
	PlatformCommission decimal.Decimal `json:"platformCommission"`
	TotalCoursesSold   int             `json:"totalCoursesSold"`
}

// AdminTransactionsResult is the admin transaction feed plus aggregates.
type AdminTransactionsResult struct {
	Transactions []TransactionResponse `json:"transactions"`
	Stats        TransactionStats      `json:"stats"`
}

// EarningsSummary is an instructor's earnings breakdown.
type EarningsSummary struct {
	UploadPayments decimal.Decimal `json:"uploadPayments"`
	CoursePayments decimal.Decimal `json:"coursePayments"`
	TotalEarned    decimal.Decimal `json:"totalEarned"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// EarningsResult pairs the summary with the underlying transactions.
type EarningsResult struct {
	Earnings     EarningsSummary       `json:"earnings"`
	Transactions []TransactionResponse `json:"transactions"`
}
