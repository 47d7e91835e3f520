package ports

import (
	"context"
	"io"

	"github.com/iramedia/work-reports/internal/core/domain"
)

// AdminSubmission is a submission joined with its owner for admin views,
// including the derived freelancer amount.
type AdminSubmission struct {
	Submission     domain.Submission
	EmployeeName   string
	EmployeeEmail  string
	EmploymentType string
	Amount         int
}

// Statistics are the headline counters on the admin dashboard.
type Statistics struct {
	TotalEmployees     int64 `json:"total_employees"`
	SubmissionsToday   int64 `json:"submissions_today"`
	SubmissionsAllTime int64 `json:"submissions_all_time"`
}

// MonthlySummary aggregates one employee's activity for one YYYY-MM month.
type MonthlySummary struct {
	Month         string `json:"month"`
	Count         int    `json:"count"`
	DaysSubmitted int    `json:"days_submitted"`
	TotalAmount   int    `json:"total_amount"`
}

// AdminService is the read model over users and submissions for admins.
type AdminService interface {
	ListSubmissions(ctx context.Context, filter ListSubmissionsFilter) ([]*AdminSubmission, error)
	Statistics(ctx context.Context) (*Statistics, error)
	// EmployeeReport returns the user and their per-month aggregates, newest
	// month first.
	EmployeeReport(ctx context.Context, userID string) (*domain.User, []MonthlySummary, error)
	// ExportCSV writes the filtered joined listing as CSV.
	ExportCSV(ctx context.Context, filter ListSubmissionsFilter, w io.Writer) error
	// ExportMonthlyCSV writes one employee's submissions for a YYYY-MM month
	// as CSV, with the derived freelancer amounts.
	ExportMonthlyCSV(ctx context.Context, userID, month string, w io.Writer) error
}
