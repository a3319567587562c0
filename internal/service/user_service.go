package service

import (
	"context"
	"errors"
	"strings"

	"savesphere/internal/entity"
	"savesphere/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	users        repository.UserRepository
	roles        repository.RoleRepository
	history      repository.PasswordHistoryRepository
	auditLogs    repository.AuditLogRepository
	passwordHash PasswordHasher
	config       AuthConfig
}

func NewUserService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	history repository.PasswordHistoryRepository,
	auditLogs repository.AuditLogRepository,
	passwordHash PasswordHasher,
	config AuthConfig,
) *UserService {
	return &UserService{
		users:        users,
		roles:        roles,
		history:      history,
		auditLogs:    auditLogs,
		passwordHash: passwordHash,
		config:       config,
	}
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

// Create mirrors registration's contract (conflict check, hash, atomic
// user+history write) without issuing tokens; it is the admin-facing path.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := normalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	role, err := s.roles.FindByName(ctx, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errors.New("default role USER is not seeded")
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := s.users.CreateWithHistory(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, int64, error) {
	return s.users.List(ctx, limit, offset)
}

// Update applies a partial patch. An email change re-checks uniqueness; a
// password change first runs the reuse guard against recent history, then
// saves the user and appends a history row atomically.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		existing, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Password != nil {
		if err := s.checkPasswordHistory(ctx, id, *input.Password); err != nil {
			return nil, err
		}
		hash, err := s.passwordHash.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		if err := s.users.SavePasswordChange(ctx, user); err != nil {
			return nil, err
		}
		s.audit(ctx, user.ID, entity.AuditPasswordChanged)
		return user, nil
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// audit writes are best-effort and never fail the calling operation.
func (s *UserService) audit(ctx context.Context, userID uuid.UUID, action entity.AuditAction) {
	if s.auditLogs == nil {
		return
	}
	_ = s.auditLogs.Log(ctx, &entity.AuditLog{
		UserID: &userID,
		Action: action,
	})
}

// checkPasswordHistory rejects a new password that verifies against any of
// the most recent stored hashes.
func (s *UserService) checkPasswordHistory(ctx context.Context, userID uuid.UUID, newPassword string) error {
	entries, err := s.history.RecentByUser(ctx, userID, s.config.historyDepth())
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if s.passwordHash.Verify(entry.PasswordHash, newPassword) {
			return ErrPasswordReused
		}
	}
	return nil
}
