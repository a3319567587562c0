package handler

import (
	"errors"
	"net/http"

	"savesphere/api/middleware"
	"savesphere/internal/dto"
	"savesphere/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterInput{Email: req.Email, Password: req.Password, Name: req.Name}
	result, err := h.Service.Register(c.Request().Context(), input, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.Login(c.Request().Context(), req.Email, req.Password, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) SetupTwoFactor(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	setup, err := h.Service.SetupTwoFactor(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TwoFactorSetupResponse{
		Secret:          setup.Secret,
		ProvisioningURI: setup.ProvisioningURI,
	})
}

func (h *AuthHandler) ConfirmTwoFactor(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.TwoFactorConfirmRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.ConfirmTwoFactor(c.Request().Context(), userID, req.Code, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) VerifyTwoFactor(c echo.Context) error {
	var req dto.TwoFactorVerifyRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.VerifyTwoFactor(c.Request().Context(), req.TempToken, req.Code, stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponseFromResult(result))
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
