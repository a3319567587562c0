package dto

import "savesphere/internal/service"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TwoFactorConfirmRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type TwoFactorVerifyRequest struct {
	TempToken string `json:"temp_token" validate:"required"`
	Code      string `json:"code" validate:"required,len=6,numeric"`
}

type TwoFactorSetupResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

type AccountSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResponse struct {
	User             *AccountSummary `json:"user,omitempty"`
	AccessToken      string          `json:"access_token,omitempty"`
	ExpiresIn        int64           `json:"expires_in,omitempty"`
	RefreshToken     string          `json:"refresh_token,omitempty"`
	RefreshExpiresIn int64           `json:"refresh_expires_in,omitempty"`

	Requires2FA      bool   `json:"requires_2fa,omitempty"`
	TempToken        string `json:"temp_token,omitempty"`
	TempTokenExpires int64  `json:"temp_token_expires_in,omitempty"`
}

func AuthResponseFromResult(result *service.AuthResult) *AuthResponse {
	if result == nil {
		return &AuthResponse{}
	}
	response := &AuthResponse{
		AccessToken:      result.AccessToken,
		ExpiresIn:        result.ExpiresIn,
		RefreshToken:     result.RefreshToken,
		RefreshExpiresIn: result.RefreshExpiresIn,
		Requires2FA:      result.Requires2FA,
		TempToken:        result.ChallengeToken,
		TempTokenExpires: result.ChallengeExpiresIn,
	}
	if result.User != nil {
		response.User = &AccountSummary{
			ID:    result.User.ID.String(),
			Email: result.User.Email,
			Name:  result.User.Name,
		}
	}
	return response
}
