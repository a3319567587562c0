package middleware

import (
	"net/http"

	"savesphere/internal/entity"
	"savesphere/internal/repository"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route on the caller's role. Roles are not embedded in
// access tokens, so the user row is consulted on each guarded request.
func RequireRole(users repository.UserRepository, role entity.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserIDFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}
			if user == nil || user.Role.Name != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
