package ports

import (
	"context"
	"io"

	"github.com/iramedia/work-reports/internal/core/domain"
)

// FileUpload is an attachment received with a report submission.
type FileUpload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// SubmitInput carries all data needed to submit one day's report.
type SubmitInput struct {
	UserID     string
	Date       string // YYYY-MM-DD; the report's subject date
	WorkText   string
	ClientName string
	WorkType   string
	Quantity   int
	File       *FileUpload // optional
}

// UpdateReportInput carries an edit of an existing report. A nil File keeps
// the current attachment; a non-nil File replaces it.
type UpdateReportInput struct {
	WorkText   string
	ClientName string
	WorkType   string
	Quantity   int
	File       *FileUpload
}

// Caller identifies the authenticated user performing an operation, used for
// ownership checks.
type Caller struct {
	UserID string
	Role   string
}

// Attachment is a downloadable stored file plus its display name.
type Attachment struct {
	Path string
	Name string
}

// MonthlyReport is one employee's submissions for a month with the derived
// freelancer amounts.
type MonthlyReport struct {
	Month        string               `json:"month"`
	Submissions  []*domain.Submission `json:"submissions"`
	DailyAmounts map[string]int       `json:"daily_amounts"`
	TotalAmount  int                  `json:"total_amount"`
}

// SubmissionService implements the daily report lifecycle.
type SubmissionService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Submission, error)
	StatusForToday(ctx context.Context, userID string) (bool, error)
	RecentForUser(ctx context.Context, userID string, limit int) ([]*domain.Submission, error)
	// Download returns the attachment of a submission. Admins may fetch any;
	// employees only their own.
	Download(ctx context.Context, submissionID string, caller Caller) (*Attachment, error)
	UpdateReport(ctx context.Context, id string, caller Caller, input UpdateReportInput) (*domain.Submission, error)
	DeleteReport(ctx context.Context, id string, caller Caller) error
	MonthlyReport(ctx context.Context, userID, month string) (*MonthlyReport, error)
}
