package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the binaries need from the environment. Secrets
// and TTLs are never hard-coded anywhere else.
type Config struct {
	DatabaseURL string
	HTTPAddr    string

	JWTIssuer        string
	JWTAccessSecret  []byte
	JWTRefreshSecret []byte

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ChallengeTTL    time.Duration

	BcryptCost int
	TOTPIssuer string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		JWTIssuer:        envOr("JWT_ISSUER", "savesphere"),
		JWTAccessSecret:  []byte(os.Getenv("JWT_ACCESS_SECRET")),
		JWTRefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTokenTTL:   envDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTokenTTL:  envDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		ChallengeTTL:     envDuration("JWT_CHALLENGE_TTL", 5*time.Minute),
		BcryptCost:       envInt("BCRYPT_COST", 10),
		TOTPIssuer:       envOr("TOTP_ISSUER", "SaveSphere"),
	}

	return cfg, nil
}

// RequireJWTSecrets is called by binaries that issue tokens; the seeder does
// not need signing keys.
func (c *Config) RequireJWTSecrets() error {
	if len(c.JWTAccessSecret) == 0 {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if len(c.JWTRefreshSecret) == 0 {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
