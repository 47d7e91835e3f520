package domain

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date format used for a submission's subject date.
const DateLayout = "2006-01-02"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrSubmissionNotFound = errors.New("submission not found")
var ErrDuplicateSubmission = errors.New("already submitted for this date")
var ErrEmptyWorkText = errors.New("work description is required")
var ErrFileRejected = errors.New("file rejected")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionNotFound = errors.New("session not found")

// Submission is one employee's work report for one calendar date.
// At most one submission exists per (UserID, Date) pair; the pair is
// enforced by a unique index at the storage layer.
type Submission struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	WorkText   string    `json:"work_text"`
	ClientName string    `json:"client_name,omitempty"`
	WorkType   string    `json:"work_type,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	FilePath   string    `json:"-"`
	FileName   string    `json:"file_name,omitempty"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasAttachment reports whether a stored file is referenced by the submission.
func (s *Submission) HasAttachment() bool {
	return s.FilePath != ""
}

// SubmissionAmount returns the payable amount for a single submission.
// Only freelancers accrue amounts: Poster pays 300 per unit, Reel and Video
// pay 600 per unit, any other work type pays nothing.
func SubmissionAmount(workType string, quantity int, employmentType string) int {
	if employmentType != EmploymentFreelancer {
		return 0
	}
	if quantity < 0 {
		quantity = 0
	}
	switch workType {
	case "Poster":
		return 300 * quantity
	case "Reel", "Video":
		return 600 * quantity
	default:
		return 0
	}
}
