package service

import (
	"time"

	"savesphere/internal/utils"

	"github.com/google/uuid"
)

// JWTTokenIssuer adapts utils.TokenManager to the TokenIssuer interface.
type JWTTokenIssuer struct {
	Manager *utils.TokenManager
}

func (j JWTTokenIssuer) IssueAccessToken(userID uuid.UUID, email string) (string, time.Duration, error) {
	return j.Manager.IssueAccessToken(userID, email)
}

func (j JWTTokenIssuer) IssueRefreshToken(userID uuid.UUID, email string) (string, time.Duration, error) {
	return j.Manager.IssueRefreshToken(userID, email)
}

func (j JWTTokenIssuer) IssueChallengeToken(userID uuid.UUID, email string) (string, time.Duration, error) {
	return j.Manager.IssueChallengeToken(userID, email)
}

func (j JWTTokenIssuer) ParseRefreshToken(token string) (*TokenIdentity, error) {
	claims, err := j.Manager.ParseRefreshToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return identityFromClaims(claims)
}

func (j JWTTokenIssuer) ParseChallengeToken(token string) (*TokenIdentity, error) {
	claims, err := j.Manager.ParseChallengeToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return identityFromClaims(claims)
}

func identityFromClaims(claims *utils.Claims) (*TokenIdentity, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &TokenIdentity{UserID: userID, Email: claims.Email}, nil
}
