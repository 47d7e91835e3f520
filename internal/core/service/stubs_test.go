package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

// In-memory fakes for the repository and store ports, shared by the service
// tests in this package.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
	// submissionPaths is what Delete reports as orphaned blobs.
	submissionPaths map[string][]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:           make(map[string]*domain.User),
		submissionPaths: make(map[string][]string),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) ([]string, error) {
	if _, ok := r.users[id]; !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return r.submissionPaths[id], nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubSubmissionRepo struct {
	subs   map[string]*domain.Submission
	owners map[string]*domain.User // optional, for ListWithUsers
	nextID int
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{
		subs:   make(map[string]*domain.Submission),
		owners: make(map[string]*domain.User),
	}
}

func cloneSubmission(s *domain.Submission) *domain.Submission {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubSubmissionRepo) Create(_ context.Context, s *domain.Submission) (*domain.Submission, error) {
	for _, existing := range r.subs {
		if existing.UserID == s.UserID && existing.Date == s.Date {
			return nil, domain.ErrDuplicateSubmission
		}
	}
	r.nextID++
	copy := cloneSubmission(s)
	copy.ID = fmt.Sprintf("sub_%d", r.nextID)
	r.subs[copy.ID] = cloneSubmission(copy)
	return copy, nil
}

func (r *stubSubmissionRepo) FindByID(_ context.Context, id string) (*domain.Submission, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	return cloneSubmission(s), nil
}

func (r *stubSubmissionRepo) Update(_ context.Context, s *domain.Submission) error {
	if _, ok := r.subs[s.ID]; !ok {
		return domain.ErrSubmissionNotFound
	}
	r.subs[s.ID] = cloneSubmission(s)
	return nil
}

func (r *stubSubmissionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.subs[id]; !ok {
		return domain.ErrSubmissionNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *stubSubmissionRepo) ExistsForDate(_ context.Context, userID, date string) (bool, error) {
	for _, s := range r.subs {
		if s.UserID == userID && s.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSubmissionRepo) forUser(userID string) []*domain.Submission {
	var out []*domain.Submission
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, cloneSubmission(s))
		}
	}
	return out
}

func (r *stubSubmissionRepo) RecentForUser(_ context.Context, userID string, limit int) ([]*domain.Submission, error) {
	out := r.forUser(userID)
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSubmissionRepo) ForUserMonth(_ context.Context, userID, month string) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, s := range r.forUser(userID) {
		if strings.HasPrefix(s.Date, month) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *stubSubmissionRepo) AllForUser(_ context.Context, userID string) ([]*domain.Submission, error) {
	out := r.forUser(userID)
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *stubSubmissionRepo) ListWithUsers(_ context.Context, filter ports.ListSubmissionsFilter) ([]*ports.SubmissionWithUser, error) {
	var out []*ports.SubmissionWithUser
	for _, s := range r.subs {
		owner, ok := r.owners[s.UserID]
		if !ok {
			continue
		}
		if filter.Date != "" && s.Date != filter.Date {
			continue
		}
		if filter.EmployeeName != "" && !strings.Contains(strings.ToLower(owner.Name), strings.ToLower(filter.EmployeeName)) {
			continue
		}
		out = append(out, &ports.SubmissionWithUser{
			Submission:     *cloneSubmission(s),
			UserName:       owner.Name,
			UserEmail:      owner.Email,
			EmploymentType: owner.EmploymentType,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Submission.CreatedAt.After(out[j].Submission.CreatedAt) })
	return out, nil
}

func (r *stubSubmissionRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.subs)), nil
}

func (r *stubSubmissionRepo) CountForDate(_ context.Context, date string) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if s.Date == date {
			n++
		}
	}
	return n, nil
}

type stubSessionStore struct {
	sessions  map[string]ports.Session
	nextID    int
	createErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]ports.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess ports.Session) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.nextID++
	token := fmt.Sprintf("token_%d", s.nextID)
	s.sessions[token] = sess
	return token, nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*ports.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

type stubFileStore struct {
	saved   map[string]string // stored name → content
	removed []string
	saveErr error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{saved: make(map[string]string)}
}

func (s *stubFileStore) Path(name string) string {
	return "/uploads/" + name
}

func (s *stubFileStore) Save(_ context.Context, name string, r io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.saved[name] = string(data)
	return nil
}

func (s *stubFileStore) Remove(_ context.Context, path string) error {
	s.removed = append(s.removed, path)
	delete(s.saved, strings.TrimPrefix(path, "/uploads/"))
	return nil
}
