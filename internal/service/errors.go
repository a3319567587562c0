package service

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrEmailTaken              = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrRefreshDenied           = errors.New("access denied")
	ErrInvalidTwoFactorCode    = errors.New("invalid 2fa code")
	ErrTwoFactorNotInitialized = errors.New("2fa not initialized")
	ErrUserNotFound            = errors.New("user not found")
	ErrPasswordReused          = errors.New("password has been used recently")
)
