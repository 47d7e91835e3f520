package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

const defaultRecentLimit = 10

// allowedExtensions is the attachment allow-list: textual docs, spreadsheets
// and images.
var allowedExtensions = map[string]struct{}{
	".txt":  {},
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".xls":  {},
	".xlsx": {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// SubmissionService implements the daily report lifecycle: one report per
// user per calendar date, with an optional validated attachment.
type SubmissionService struct {
	subs           ports.SubmissionRepository
	users          ports.UserRepository
	files          ports.FileStore
	maxUploadBytes int64
	log            zerolog.Logger
}

func NewSubmissionService(
	subs ports.SubmissionRepository,
	users ports.UserRepository,
	files ports.FileStore,
	maxUploadBytes int64,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		subs:           subs,
		users:          users,
		files:          files,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// Submit validates and persists one day's report. The row is inserted before
// the attachment blob is written: the unique (user, date) index decides races,
// and the losing request never touches disk. A failed blob write deletes the
// row again so neither an orphaned row nor an orphaned file survives.
func (s *SubmissionService) Submit(ctx context.Context, in ports.SubmitInput) (*domain.Submission, error) {
	text := strings.TrimSpace(in.WorkText)
	if text == "" {
		return nil, domain.ErrEmptyWorkText
	}

	date := in.Date
	if date == "" {
		date = time.Now().UTC().Format(domain.DateLayout)
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	var storedName, displayName string
	if in.File != nil {
		if err := s.validateUpload(in.File); err != nil {
			return nil, err
		}
		storedName = storageName(in.UserID, in.File.Name)
		displayName = filepath.Base(in.File.Name)
	}

	sub := &domain.Submission{
		UserID:     in.UserID,
		WorkText:   text,
		ClientName: strings.TrimSpace(in.ClientName),
		WorkType:   strings.TrimSpace(in.WorkType),
		Quantity:   in.Quantity,
		Date:       date,
		CreatedAt:  time.Now().UTC(),
	}
	if storedName != "" {
		sub.FilePath = s.files.Path(storedName)
		sub.FileName = displayName
	}

	created, err := s.subs.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	if in.File != nil {
		if err := s.files.Save(ctx, storedName, in.File.Content); err != nil {
			if delErr := s.subs.Delete(ctx, created.ID); delErr != nil {
				s.log.Error().Err(delErr).Str("submission_id", created.ID).Msg("failed to roll back submission after blob write failure")
			}
			return nil, fmt.Errorf("store attachment: %w", err)
		}
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("date", date).
		Bool("attachment", in.File != nil).
		Msg("report submitted")

	return created, nil
}

// StatusForToday reports whether the user has already submitted for today's
// wall-clock date.
func (s *SubmissionService) StatusForToday(ctx context.Context, userID string) (bool, error) {
	today := time.Now().UTC().Format(domain.DateLayout)
	return s.subs.ExistsForDate(ctx, userID, today)
}

func (s *SubmissionService) RecentForUser(ctx context.Context, userID string, limit int) ([]*domain.Submission, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.subs.RecentForUser(ctx, userID, limit)
}

// Download returns the attachment of a submission. Admins may fetch any
// submission's file; employees only their own.
func (s *SubmissionService) Download(ctx context.Context, submissionID string, caller ports.Caller) (*ports.Attachment, error) {
	sub, err := s.subs.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && sub.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	if !sub.HasAttachment() {
		return nil, domain.ErrSubmissionNotFound
	}

	name := sub.FileName
	if name == "" {
		name = filepath.Base(sub.FilePath)
	}
	return &ports.Attachment{Path: sub.FilePath, Name: name}, nil
}

// UpdateReport edits an existing report in place. Only the owner or an admin
// may edit; a supplied file replaces the current attachment.
func (s *SubmissionService) UpdateReport(ctx context.Context, id string, caller ports.Caller, in ports.UpdateReportInput) (*domain.Submission, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && sub.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}

	text := strings.TrimSpace(in.WorkText)
	if text == "" {
		return nil, domain.ErrEmptyWorkText
	}

	oldPath := sub.FilePath
	var storedName string
	if in.File != nil {
		if err := s.validateUpload(in.File); err != nil {
			return nil, err
		}
		storedName = storageName(sub.UserID, in.File.Name)
		if err := s.files.Save(ctx, storedName, in.File.Content); err != nil {
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		sub.FilePath = s.files.Path(storedName)
		sub.FileName = filepath.Base(in.File.Name)
	}

	sub.WorkText = text
	sub.ClientName = strings.TrimSpace(in.ClientName)
	sub.WorkType = strings.TrimSpace(in.WorkType)
	sub.Quantity = in.Quantity

	if err := s.subs.Update(ctx, sub); err != nil {
		if storedName != "" {
			if rmErr := s.files.Remove(ctx, s.files.Path(storedName)); rmErr != nil {
				s.log.Warn().Err(rmErr).Msg("failed to remove replacement attachment after update failure")
			}
		}
		return nil, err
	}

	if in.File != nil && oldPath != "" {
		if err := s.files.Remove(ctx, oldPath); err != nil {
			s.log.Warn().Err(err).Str("path", oldPath).Msg("failed to remove replaced attachment")
		}
	}

	return sub, nil
}

// DeleteReport removes a single report and its attachment. Only the owner or
// an admin may delete.
func (s *SubmissionService) DeleteReport(ctx context.Context, id string, caller ports.Caller) error {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin && sub.UserID != caller.UserID {
		return domain.ErrForbidden
	}

	if err := s.subs.Delete(ctx, id); err != nil {
		return err
	}
	if sub.HasAttachment() {
		if err := s.files.Remove(ctx, sub.FilePath); err != nil {
			s.log.Warn().Err(err).Str("path", sub.FilePath).Msg("failed to remove attachment of deleted report")
		}
	}
	return nil
}

// MonthlyReport returns one employee's submissions for a YYYY-MM month,
// oldest first, with per-day and total freelancer amounts.
func (s *SubmissionService) MonthlyReport(ctx context.Context, userID, month string) (*ports.MonthlyReport, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subs.ForUserMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	report := &ports.MonthlyReport{
		Month:        month,
		Submissions:  subs,
		DailyAmounts: make(map[string]int),
	}
	for _, sub := range subs {
		amount := domain.SubmissionAmount(sub.WorkType, sub.Quantity, user.EmploymentType)
		report.DailyAmounts[sub.Date] += amount
		report.TotalAmount += amount
	}
	return report, nil
}

func (s *SubmissionService) validateUpload(f *ports.FileUpload) error {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: file type %q is not allowed", domain.ErrFileRejected, ext)
	}
	if s.maxUploadBytes > 0 && f.Size > s.maxUploadBytes {
		return fmt.Errorf("%w: file exceeds the %d byte limit", domain.ErrFileRejected, s.maxUploadBytes)
	}
	return nil
}

// storageName derives a collision-free stored name from the owning user and
// the upload instant; the original filename contributes only its extension.
func storageName(userID, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%d%s", userID, time.Now().UTC().UnixNano(), ext)
}
