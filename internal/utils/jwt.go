package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const challengeTokenType = "2fa"

// TokenManager signs and verifies the three token kinds: short-lived access
// tokens, long-lived refresh tokens and the two-factor challenge token handed
// out between password check and TOTP verification. Access and refresh use
// distinct secrets so one leaked key never mints the other kind.
type TokenManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Issuer        string

	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	ChallengeTTL time.Duration
}

type Claims struct {
	Email string `json:"email"`
	Type  string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

func (m *TokenManager) IssueAccessToken(userID uuid.UUID, email string) (string, time.Duration, error) {
	ttl := m.AccessTTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	token, err := m.sign(userID, email, "", ttl, m.AccessSecret)
	return token, ttl, err
}

func (m *TokenManager) IssueRefreshToken(userID uuid.UUID, email string) (string, time.Duration, error) {
	ttl := m.RefreshTTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	token, err := m.sign(userID, email, "", ttl, m.RefreshSecret)
	return token, ttl, err
}

// IssueChallengeToken mints the temporary token returned by login when the
// account has two-factor enabled. It is signed with the access secret but
// carries typ=2fa, so the bearer-auth middleware rejects it everywhere except
// the verify step.
func (m *TokenManager) IssueChallengeToken(userID uuid.UUID, email string) (string, time.Duration, error) {
	ttl := m.ChallengeTTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	token, err := m.sign(userID, email, challengeTokenType, ttl, m.AccessSecret)
	return token, ttl, err
}

func (m *TokenManager) ParseAccessToken(token string) (*Claims, error) {
	claims, err := m.parse(token, m.AccessSecret)
	if err != nil {
		return nil, err
	}
	if claims.Type != "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) ParseRefreshToken(token string) (*Claims, error) {
	claims, err := m.parse(token, m.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.Type != "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) ParseChallengeToken(token string) (*Claims, error) {
	claims, err := m.parse(token, m.AccessSecret)
	if err != nil {
		return nil, err
	}
	if claims.Type != challengeTokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) sign(userID uuid.UUID, email string, tokenType string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (m *TokenManager) parse(tokenString string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
