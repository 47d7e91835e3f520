package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

func seedAdminFixtures(t *testing.T) (*stubUserRepo, *stubSubmissionRepo) {
	t.Helper()
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()

	alice, err := users.Create(context.Background(), &domain.User{
		Name: "Alice", Email: "alice@example.com", Role: domain.RoleEmployee,
		EmploymentType: domain.EmploymentFreelancer,
	})
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	bob, err := users.Create(context.Background(), &domain.User{
		Name: "Bob", Email: "bob@example.com", Role: domain.RoleEmployee,
		EmploymentType: domain.EmploymentInHouse,
	})
	if err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	subs.owners[alice.ID] = alice
	subs.owners[bob.ID] = bob

	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	rows := []*domain.Submission{
		{UserID: alice.ID, Date: "2026-08-20", WorkText: "poster batch", WorkType: "Poster", Quantity: 2, CreatedAt: base},
		{UserID: alice.ID, Date: "2026-08-21", WorkText: "reel edit", WorkType: "Reel", Quantity: 1, CreatedAt: base.Add(24 * time.Hour)},
		{UserID: bob.ID, Date: "2026-08-21", WorkText: "client calls", CreatedAt: base.Add(25 * time.Hour)},
	}
	for _, row := range rows {
		if _, err := subs.Create(context.Background(), row); err != nil {
			t.Fatalf("seed submission: %v", err)
		}
	}
	return users, subs
}

func TestAdminService_ListSubmissions_Filters(t *testing.T) {
	users, subs := seedAdminFixtures(t)
	svc := NewAdminService(users, subs, zerolog.Nop())

	all, err := svc.ListSubmissions(context.Background(), ports.ListSubmissionsFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}

	byName, err := svc.ListSubmissions(context.Background(), ports.ListSubmissionsFilter{EmployeeName: "ali"})
	if err != nil {
		t.Fatalf("list by name failed: %v", err)
	}
	if len(byName) != 2 {
		t.Fatalf("expected 2 rows for alice, got %d", len(byName))
	}

	// Name and date filters combine as a conjunction.
	both, err := svc.ListSubmissions(context.Background(), ports.ListSubmissionsFilter{EmployeeName: "ali", Date: "2026-08-21"})
	if err != nil {
		t.Fatalf("list by both failed: %v", err)
	}
	if len(both) != 1 || both[0].Submission.WorkType != "Reel" {
		t.Fatalf("unexpected conjunction result: %+v", both)
	}
}

func TestAdminService_ListSubmissions_Amounts(t *testing.T) {
	users, subs := seedAdminFixtures(t)
	svc := NewAdminService(users, subs, zerolog.Nop())

	rows, err := svc.ListSubmissions(context.Background(), ports.ListSubmissionsFilter{Date: "2026-08-21"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	amounts := map[string]int{}
	for _, row := range rows {
		amounts[row.EmployeeName] = row.Amount
	}
	if amounts["Alice"] != 600 {
		t.Fatalf("expected freelancer reel amount 600, got %d", amounts["Alice"])
	}
	if amounts["Bob"] != 0 {
		t.Fatalf("expected in-house amount 0, got %d", amounts["Bob"])
	}
}

func TestAdminService_Statistics(t *testing.T) {
	users, subs := seedAdminFixtures(t)
	svc := NewAdminService(users, subs, zerolog.Nop())

	today := time.Now().UTC().Format(domain.DateLayout)
	if _, err := subs.Create(context.Background(), &domain.Submission{
		UserID: "user_1", Date: today, WorkText: "today's work", CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed today: %v", err)
	}

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if stats.TotalEmployees != 2 {
		t.Fatalf("expected 2 employees, got %d", stats.TotalEmployees)
	}
	if stats.SubmissionsToday != 1 {
		t.Fatalf("expected 1 submission today, got %d", stats.SubmissionsToday)
	}
	if stats.SubmissionsAllTime != 4 {
		t.Fatalf("expected 4 submissions all time, got %d", stats.SubmissionsAllTime)
	}
}

func TestAdminService_EmployeeReport(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	svc := NewAdminService(users, subs, zerolog.Nop())

	alice, err := users.Create(context.Background(), &domain.User{
		Name: "Alice", Email: "alice@example.com", Role: domain.RoleEmployee,
		EmploymentType: domain.EmploymentFreelancer,
	})
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}

	for _, row := range []*domain.Submission{
		{UserID: alice.ID, Date: "2026-07-30", WorkType: "Poster", Quantity: 1, WorkText: "a"},
		{UserID: alice.ID, Date: "2026-08-20", WorkType: "Poster", Quantity: 2, WorkText: "b"},
		{UserID: alice.ID, Date: "2026-08-21", WorkType: "Reel", Quantity: 1, WorkText: "c"},
	} {
		if _, err := subs.Create(context.Background(), row); err != nil {
			t.Fatalf("seed submission: %v", err)
		}
	}

	user, months, err := svc.EmployeeReport(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("employee report failed: %v", err)
	}
	if user.ID != alice.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Month != "2026-08" || months[1].Month != "2026-07" {
		t.Fatalf("expected newest month first, got %s then %s", months[0].Month, months[1].Month)
	}
	aug := months[0]
	if aug.Count != 2 || aug.DaysSubmitted != 2 {
		t.Fatalf("unexpected august aggregate: %+v", aug)
	}
	if aug.TotalAmount != 1200 { // 2 posters (600) + 1 reel (600)
		t.Fatalf("expected august amount 1200, got %d", aug.TotalAmount)
	}

	if _, _, err := svc.EmployeeReport(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_ExportCSV(t *testing.T) {
	users, subs := seedAdminFixtures(t)
	svc := NewAdminService(users, subs, zerolog.Nop())

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), ports.ListSubmissionsFilter{EmployeeName: "alice"}, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 3 { // header + 2 rows
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0][0] != "Employee Name" || records[0][6] != "Amount" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	// Newest row first: the reel on 2026-08-21, worth 600.
	if records[1][2] != "2026-08-21" || records[1][6] != "600" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
}

func TestAdminService_ExportMonthlyCSV(t *testing.T) {
	users := newStubUserRepo()
	subs := newStubSubmissionRepo()
	svc := NewAdminService(users, subs, zerolog.Nop())

	alice, err := users.Create(context.Background(), &domain.User{
		Name: "Alice", Email: "alice@example.com", Role: domain.RoleEmployee,
		EmploymentType: domain.EmploymentFreelancer,
	})
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}

	for _, row := range []*domain.Submission{
		{UserID: alice.ID, Date: "2026-08-20", WorkType: "Poster", Quantity: 2, WorkText: "posters"},
		{UserID: alice.ID, Date: "2026-08-03", WorkType: "Reel", Quantity: 1, WorkText: "reel"},
		{UserID: alice.ID, Date: "2026-07-30", WorkType: "Poster", Quantity: 1, WorkText: "outside month"},
	} {
		if _, err := subs.Create(context.Background(), row); err != nil {
			t.Fatalf("seed submission: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := svc.ExportMonthlyCSV(context.Background(), alice.ID, "2026-08", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 3 { // header + 2 august rows
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0][0] != "Date" || records[0][4] != "Amount" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	// Oldest first: the reel on 2026-08-03 (600) before the posters (600).
	if records[1][0] != "2026-08-03" || records[1][4] != "600" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][0] != "2026-08-20" || records[2][4] != "600" {
		t.Fatalf("unexpected second row: %v", records[2])
	}
}

func TestAdminService_ExportMonthlyCSV_Errors(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAdminService(users, newStubSubmissionRepo(), zerolog.Nop())

	var buf bytes.Buffer
	if err := svc.ExportMonthlyCSV(context.Background(), "ghost", "August 2026", &buf); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad month, got %v", err)
	}
	if err := svc.ExportMonthlyCSV(context.Background(), "ghost", "2026-08", &buf); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output on failure, got %q", buf.String())
	}
}
