package service

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	// PasswordHistoryDepth is how many previous hashes a new password is
	// checked against. Zero means the default of 5.
	PasswordHistoryDepth int
}

func (c AuthConfig) historyDepth() int {
	if c.PasswordHistoryDepth > 0 {
		return c.PasswordHistoryDepth
	}
	return 5
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type TokenIssuer interface {
	IssueAccessToken(userID uuid.UUID, email string) (string, time.Duration, error)
	IssueRefreshToken(userID uuid.UUID, email string) (string, time.Duration, error)
	IssueChallengeToken(userID uuid.UUID, email string) (string, time.Duration, error)
	ParseRefreshToken(token string) (*TokenIdentity, error)
	ParseChallengeToken(token string) (*TokenIdentity, error)
}

// TokenIdentity is the subject a verified token speaks for.
type TokenIdentity struct {
	UserID uuid.UUID
	Email  string
}

type TwoFactorProvider interface {
	GenerateSecret() (string, error)
	ProvisioningURI(email string, secret string) (string, error)
	ValidateCode(secret string, code string) bool
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
