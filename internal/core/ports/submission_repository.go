package ports

import (
	"context"

	"github.com/iramedia/work-reports/internal/core/domain"
)

// ListSubmissionsFilter carries the admin listing filters. Both filters are
// optional; when both are present they are combined as a conjunction.
type ListSubmissionsFilter struct {
	EmployeeName string // case-insensitive substring match on the owner's name
	Date         string // exact calendar date, YYYY-MM-DD
}

// SubmissionWithUser is a submission joined with its owning user's display
// fields, used by the admin read model.
type SubmissionWithUser struct {
	Submission     domain.Submission
	UserName       string
	UserEmail      string
	EmploymentType string
}

// SubmissionRepository defines persistence operations for submissions.
// The (user_id, date) pair is unique at the storage layer; Create surfaces a
// violation as domain.ErrDuplicateSubmission.
type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	Update(ctx context.Context, s *domain.Submission) error
	Delete(ctx context.Context, id string) error
	ExistsForDate(ctx context.Context, userID, date string) (bool, error)
	// RecentForUser returns the user's submissions newest-first by date, then
	// by creation time.
	RecentForUser(ctx context.Context, userID string, limit int) ([]*domain.Submission, error)
	// ForUserMonth returns the user's submissions for a YYYY-MM month, oldest first.
	ForUserMonth(ctx context.Context, userID, month string) ([]*domain.Submission, error)
	// AllForUser returns every submission of the user, newest first.
	AllForUser(ctx context.Context, userID string) ([]*domain.Submission, error)
	// ListWithUsers returns filtered submissions joined with their owners,
	// ordered by creation time descending.
	ListWithUsers(ctx context.Context, filter ListSubmissionsFilter) ([]*SubmissionWithUser, error)
	CountAll(ctx context.Context) (int64, error)
	CountForDate(ctx context.Context, date string) (int64, error)
}
