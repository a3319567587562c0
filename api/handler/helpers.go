package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"savesphere/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// writeServiceError maps service sentinels to HTTP statuses. Anything
// unmapped is a 500 with a generic body so internals never leak.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrPasswordReused):
		return writeError(c, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidTwoFactorCode),
		errors.Is(err, service.ErrTwoFactorNotInitialized):
		return writeError(c, http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrRefreshDenied):
		return writeError(c, http.StatusForbidden, err)
	case errors.Is(err, service.ErrEmailTaken):
		return writeError(c, http.StatusConflict, err)
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, http.StatusNotFound, err)
	}
	return writeError(c, http.StatusInternalServerError, errors.New("internal error"))
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
