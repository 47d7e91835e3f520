package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
)

// IdentityService implements user account management. Passwords are hashed
// on write and never leave the service in plaintext.
type IdentityService struct {
	users ports.UserRepository
	files ports.FileStore
	log   zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, files ports.FileStore, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, files: files, log: log}
}

func (s *IdentityService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}
	employment := in.EmploymentType
	if employment == "" {
		employment = domain.EmploymentInHouse
	}
	if !domain.ValidEmploymentType(employment) {
		return nil, fmt.Errorf("%w: unknown employment type %q", domain.ErrInvalidInput, in.EmploymentType)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           in.Role,
		EmploymentType: employment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update applies an admin edit. An empty input password keeps the stored hash.
func (s *IdentityService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	employment := in.EmploymentType
	if employment == "" {
		employment = user.EmploymentType
	}
	if !domain.ValidEmploymentType(employment) {
		return nil, fmt.Errorf("%w: unknown employment type %q", domain.ErrInvalidInput, in.EmploymentType)
	}

	user.Name = name
	user.Email = email
	user.EmploymentType = employment
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

// Delete removes the user together with their submissions (a single storage
// transaction) and then unlinks the attachment blobs the cascade orphaned.
func (s *IdentityService) Delete(ctx context.Context, id string) error {
	paths, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, p := range paths {
		if err := s.files.Remove(ctx, p); err != nil {
			s.log.Warn().Err(err).Str("path", p).Msg("failed to remove orphaned attachment")
		}
	}

	s.log.Info().Str("user_id", id).Int("attachments_removed", len(paths)).Msg("user deleted")
	return nil
}

func (s *IdentityService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *IdentityService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile changes the user's own display name and, when password is
// non-empty, their password.
func (s *IdentityService) UpdateProfile(ctx context.Context, id, name, password string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	user.Name = name
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}
