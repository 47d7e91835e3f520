package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

// AdminService is the read model over users and submissions for the admin
// dashboard. Writes go through the IdentityService; role enforcement is the
// access gate's job.
type AdminService struct {
	users ports.UserRepository
	subs  ports.SubmissionRepository
	log   zerolog.Logger
}

func NewAdminService(users ports.UserRepository, subs ports.SubmissionRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, subs: subs, log: log}
}

// ListSubmissions returns filtered submissions joined with their owners,
// newest first. Name and date filters are conjunctive.
func (s *AdminService) ListSubmissions(ctx context.Context, filter ports.ListSubmissionsFilter) ([]*ports.AdminSubmission, error) {
	rows, err := s.subs.ListWithUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*ports.AdminSubmission, 0, len(rows))
	for _, row := range rows {
		out = append(out, &ports.AdminSubmission{
			Submission:     row.Submission,
			EmployeeName:   row.UserName,
			EmployeeEmail:  row.UserEmail,
			EmploymentType: row.EmploymentType,
			Amount:         domain.SubmissionAmount(row.Submission.WorkType, row.Submission.Quantity, row.EmploymentType),
		})
	}
	return out, nil
}

func (s *AdminService) Statistics(ctx context.Context) (*ports.Statistics, error) {
	employees, err := s.users.CountByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format(domain.DateLayout)
	todayCount, err := s.subs.CountForDate(ctx, today)
	if err != nil {
		return nil, err
	}

	total, err := s.subs.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.Statistics{
		TotalEmployees:     employees,
		SubmissionsToday:   todayCount,
		SubmissionsAllTime: total,
	}, nil
}

// EmployeeReport aggregates one employee's submissions per month, newest
// month first: submission count, distinct days covered, and the freelancer
// amount accrued.
func (s *AdminService) EmployeeReport(ctx context.Context, userID string) (*domain.User, []ports.MonthlySummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	subs, err := s.subs.AllForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	// subs arrive newest-first, so first-seen month order is already the
	// output order.
	var months []string
	byMonth := make(map[string][]*domain.Submission)
	for _, sub := range subs {
		if len(sub.Date) < 7 {
			continue
		}
		m := sub.Date[:7]
		if _, seen := byMonth[m]; !seen {
			months = append(months, m)
		}
		byMonth[m] = append(byMonth[m], sub)
	}

	summaries := make([]ports.MonthlySummary, 0, len(months))
	for _, m := range months {
		days := make(map[string]struct{})
		summary := ports.MonthlySummary{Month: m}
		for _, sub := range byMonth[m] {
			summary.Count++
			days[sub.Date] = struct{}{}
			summary.TotalAmount += domain.SubmissionAmount(sub.WorkType, sub.Quantity, user.EmploymentType)
		}
		summary.DaysSubmitted = len(days)
		summaries = append(summaries, summary)
	}
	return user, summaries, nil
}

// ExportCSV writes the filtered joined listing as CSV rows.
func (s *AdminService) ExportCSV(ctx context.Context, filter ports.ListSubmissionsFilter, w io.Writer) error {
	rows, err := s.ListSubmissions(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"Employee Name", "Type", "Date", "Client", "Work Type", "Qty", "Amount", "Description", "Submitted At"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.EmployeeName,
			row.EmploymentType,
			row.Submission.Date,
			row.Submission.ClientName,
			row.Submission.WorkType,
			strconv.Itoa(row.Submission.Quantity),
			strconv.Itoa(row.Amount),
			row.Submission.WorkText,
			row.Submission.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportMonthlyCSV writes one employee's submissions for a YYYY-MM month as
// CSV rows, oldest first.
func (s *AdminService) ExportMonthlyCSV(ctx context.Context, userID, month string, w io.Writer) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("%w: month must be YYYY-MM", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	subs, err := s.subs.ForUserMonth(ctx, userID, month)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"Date", "Client", "Work Type", "Qty", "Amount", "Description", "Submitted At"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, sub := range subs {
		amount := domain.SubmissionAmount(sub.WorkType, sub.Quantity, user.EmploymentType)
		record := []string{
			sub.Date,
			sub.ClientName,
			sub.WorkType,
			strconv.Itoa(sub.Quantity),
			strconv.Itoa(amount),
			sub.WorkText,
			sub.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
