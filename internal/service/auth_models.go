package service

import "github.com/google/uuid"

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AccountSummary struct {
	ID    uuid.UUID
	Email string
	Name  string
}

type TokenPair struct {
	AccessToken      string
	ExpiresIn        int64
	RefreshToken     string
	RefreshExpiresIn int64
}

// AuthResult is either a full token pair with the account summary, or — when
// the account has two-factor enabled — only a short-lived challenge token.
type AuthResult struct {
	User *AccountSummary
	TokenPair

	Requires2FA        bool
	ChallengeToken     string
	ChallengeExpiresIn int64
}

type TwoFactorSetup struct {
	Secret          string
	ProvisioningURI string
}
