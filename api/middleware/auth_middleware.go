package middleware

import (
	"net/http"
	"strings"

	"savesphere/internal/utils"

	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	Tokens *utils.TokenManager
}

// RequireAuth accepts only real access tokens. Challenge tokens carry a typ
// claim and fail ParseAccessToken, so a 2FA-pending login cannot reach any
// authenticated route.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Tokens == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		claims, err := m.Tokens.ParseAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		SetAuthContext(c, userID, claims.Email)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
