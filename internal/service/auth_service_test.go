package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"savesphere/internal/entity"
	"savesphere/internal/repository"
	"savesphere/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.PasswordHistory{},
		&entity.Category{},
		&entity.Tag{},
		&entity.Currency{},
		&entity.ExchangeRate{},
		&entity.AuditLog{},
	))
	return db
}

func seedRoles(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, name := range []entity.RoleName{entity.RoleAdmin, entity.RoleUser, entity.RoleManager} {
		require.NoError(t, db.Create(&entity.Role{Name: name}).Error)
	}
}

func newTestTokenManager() *utils.TokenManager {
	return &utils.TokenManager{
		AccessSecret:  []byte("test-access"),
		RefreshSecret: []byte("test-refresh"),
		Issuer:        "savesphere-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		ChallengeTTL:  5 * time.Minute,
	}
}

func newTestAuthService(t *testing.T, db *gorm.DB) (*AuthService, *utils.TokenManager) {
	t.Helper()
	tokens := newTestTokenManager()
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
		repository.NewAuditLogRepository(db),
		BcryptPasswordHasher{Cost: 4},
		JWTTokenIssuer{Manager: tokens},
		NewTOTPProvider("SaveSphere"),
	)
	return svc, tokens
}

func TestRegisterCreatesUserAndHistory(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, tokens := newTestAuthService(t, db)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:    "a@b.com",
		Password: "Str0ng!Pass",
		Name:     "A",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, result.User)
	assert.Equal(t, "a@b.com", result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	claims, err := tokens.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), claims.Subject)

	var user entity.User
	require.NoError(t, db.Where("email = ?", "a@b.com").First(&user).Error)
	assert.NotEqual(t, "Str0ng!Pass", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$"))

	var historyCount int64
	require.NoError(t, db.Model(&entity.PasswordHistory{}).Where("user_id = ?", user.ID).Count(&historyCount).Error)
	assert.EqualValues(t, 1, historyCount)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, _ := newTestAuthService(t, db)
	ctx := context.Background()

	input := RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}
	_, err := svc.Register(ctx, input, nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input, nil)
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterWithoutSeededRoleFails(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestAuthService(t, db)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "a@b.com",
		Password: "Str0ng!Pass",
		Name:     "A",
	}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLoginReturnsTokensForCorrectPassword(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, tokens := newTestAuthService(t, db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}, nil)
	require.NoError(t, err)

	result, err := svc.Login(ctx, "a@b.com", "Str0ng!Pass", nil)
	require.NoError(t, err)
	assert.False(t, result.Requires2FA)

	claims, err := tokens.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID.String(), claims.Subject)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, _ := newTestAuthService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}, nil)
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@b.com", "not-the-password", nil)
	_, unknownEmail := svc.Login(ctx, "nobody@b.com", "whatever-pass", nil)

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestRefreshRotationChains(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, _ := newTestAuthService(t, db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}, nil)
	require.NoError(t, err)

	refresh := registered.RefreshToken
	for i := 0; i < 3; i++ {
		rotated, err := svc.Refresh(ctx, refresh)
		require.NoError(t, err)
		require.NotEmpty(t, rotated.RefreshToken)
		refresh = rotated.RefreshToken
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, _ := newTestAuthService(t, db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}, nil)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, registered.AccessToken)
	assert.ErrorIs(t, err, ErrRefreshDenied)
}

func TestRefreshRejectsDeletedAccount(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, _ := newTestAuthService(t, db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}, nil)
	require.NoError(t, err)

	require.NoError(t, db.Where("email = ?", "a@b.com").Delete(&entity.User{}).Error)

	_, err = svc.Refresh(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshDenied)
}

func TestTwoFactorEnrollmentAndLogin(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, tokens := newTestAuthService(t, db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}, nil)
	require.NoError(t, err)
	userID := registered.User.ID

	setup, err := svc.SetupTwoFactor(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.Contains(t, setup.ProvisioningURI, "otpauth://totp/")

	// Login before confirmation still issues full tokens.
	beforeConfirm, err := svc.Login(ctx, "a@b.com", "Str0ng!Pass", nil)
	require.NoError(t, err)
	assert.False(t, beforeConfirm.Requires2FA)

	_, err = svc.ConfirmTwoFactor(ctx, userID, "000000", nil)
	assert.ErrorIs(t, err, ErrInvalidTwoFactorCode)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	confirmed, err := svc.ConfirmTwoFactor(ctx, userID, code, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, confirmed.AccessToken)

	// With 2FA enabled, login yields only the challenge token.
	challenged, err := svc.Login(ctx, "a@b.com", "Str0ng!Pass", nil)
	require.NoError(t, err)
	assert.True(t, challenged.Requires2FA)
	assert.Empty(t, challenged.AccessToken)
	assert.Empty(t, challenged.RefreshToken)
	require.NotEmpty(t, challenged.ChallengeToken)

	// The challenge token must not pass as an access token anywhere.
	_, err = tokens.ParseAccessToken(challenged.ChallengeToken)
	assert.Error(t, err)

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	verified, err := svc.VerifyTwoFactor(ctx, challenged.ChallengeToken, code, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, verified.AccessToken)

	claims, err := tokens.ParseAccessToken(verified.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestVerifyTwoFactorRejectsBadInputs(t *testing.T) {
	db := newTestDB(t)
	seedRoles(t, db)
	svc, _ := newTestAuthService(t, db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!Pass", Name: "A"}, nil)
	require.NoError(t, err)

	// An access token is not a challenge token.
	_, err = svc.VerifyTwoFactor(ctx, registered.AccessToken, "123456", nil)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyTwoFactor(ctx, "not-a-token", "123456", nil)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
