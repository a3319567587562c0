package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"savesphere/internal/entity"
	"savesphere/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Compared against on the unknown-email login path so both failure modes
// cost one bcrypt verification.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users     repository.UserRepository
	roles     repository.RoleRepository
	auditLogs repository.AuditLogRepository

	passwordHash PasswordHasher
	tokens       TokenIssuer
	twoFactor    TwoFactorProvider
}

func NewAuthService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	auditLogs repository.AuditLogRepository,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	twoFactor TwoFactorProvider,
) *AuthService {
	return &AuthService{
		users:        users,
		roles:        roles,
		auditLogs:    auditLogs,
		passwordHash: passwordHash,
		tokens:       tokens,
		twoFactor:    twoFactor,
	}
}

// Register creates the account with the default USER role and its initial
// password-history row in one transaction, then issues a token pair.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, ipAddress *string) (*AuthResult, error) {
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
		// Seed precondition, not a user-facing failure.
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

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, &user.ID, ipAddress, entity.AuditRegistered, nil)
	return result, nil
}

// Login returns a full token pair, or only a short-lived challenge token when
// the account has two-factor enabled. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string, ipAddress *string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidInput
	}

	normalized := normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, password)
		s.audit(ctx, nil, ipAddress, entity.AuditLoginFailed, map[string]any{"email": normalized})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, password) {
		s.audit(ctx, &user.ID, ipAddress, entity.AuditLoginFailed, map[string]any{"email": normalized})
		return nil, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		challenge, ttl, err := s.tokens.IssueChallengeToken(user.ID, user.Email)
		if err != nil {
			return nil, err
		}
		return &AuthResult{
			Requires2FA:        true,
			ChallengeToken:     challenge,
			ChallengeExpiresIn: int64(ttl.Seconds()),
		}, nil
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, &user.ID, ipAddress, entity.AuditLoginSuccess, nil)
	return result, nil
}

// Refresh rotates the token pair. The presented refresh token must verify
// against the refresh secret and its subject must still exist; both failures
// surface as the same error. Stateless: the old refresh token is not revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrRefreshDenied
	}

	identity, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrRefreshDenied
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrRefreshDenied
	}

	return s.issueTokens(user)
}

// SetupTwoFactor generates a TOTP secret, stores it un-enabled and returns
// the otpauth provisioning URI for QR rendering.
func (s *AuthService) SetupTwoFactor(ctx context.Context, userID uuid.UUID) (*TwoFactorSetup, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	secret, err := s.twoFactor.GenerateSecret()
	if err != nil {
		return nil, err
	}

	user.TwoFactorSecret = &secret
	user.TwoFactorEnabled = false
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	uri, err := s.twoFactor.ProvisioningURI(user.Email, secret)
	if err != nil {
		return nil, err
	}
	return &TwoFactorSetup{Secret: secret, ProvisioningURI: uri}, nil
}

// ConfirmTwoFactor validates the code against the stored secret and flips the
// enabled flag, then issues a normal token pair.
func (s *AuthService) ConfirmTwoFactor(ctx context.Context, userID uuid.UUID, code string, ipAddress *string) (*AuthResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.TwoFactorSecret == nil {
		return nil, ErrTwoFactorNotInitialized
	}

	if !s.twoFactor.ValidateCode(*user.TwoFactorSecret, code) {
		s.audit(ctx, &user.ID, ipAddress, entity.AuditTwoFactorFailed, nil)
		return nil, ErrInvalidTwoFactorCode
	}

	user.TwoFactorEnabled = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// VerifyTwoFactor is the post-login second factor: the identity comes from
// the challenge token issued by Login, never from the caller directly.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, challengeToken, code string, ipAddress *string) (*AuthResult, error) {
	if strings.TrimSpace(challengeToken) == "" || strings.TrimSpace(code) == "" {
		return nil, ErrInvalidInput
	}

	identity, err := s.tokens.ParseChallengeToken(challengeToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		return nil, ErrInvalidToken
	}

	if !s.twoFactor.ValidateCode(*user.TwoFactorSecret, code) {
		s.audit(ctx, &user.ID, ipAddress, entity.AuditTwoFactorFailed, nil)
		return nil, ErrInvalidTwoFactorCode
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, &user.ID, ipAddress, entity.AuditLoginSuccess, map[string]any{"2fa": true})
	return result, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthResult, error) {
	access, accessTTL, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, refreshTTL, err := s.tokens.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User: &AccountSummary{ID: user.ID, Email: user.Email, Name: user.Name},
		TokenPair: TokenPair{
			AccessToken:      access,
			ExpiresIn:        int64(accessTTL.Seconds()),
			RefreshToken:     refresh,
			RefreshExpiresIn: int64(refreshTTL.Seconds()),
		},
	}, nil
}

// audit writes are best-effort and never fail the calling operation.
func (s *AuthService) audit(ctx context.Context, userID *uuid.UUID, ipAddress *string, action entity.AuditAction, metadata map[string]any) {
	if s.auditLogs == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return
		}
		payload = datatypes.JSON(bytes)
	}
	_ = s.auditLogs.Log(ctx, &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
