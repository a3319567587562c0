package routes

import (
	"time"

	"savesphere/api/handler"
	"savesphere/api/middleware"
	"savesphere/internal/entity"
	"savesphere/internal/repository"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Reference      *handler.ReferenceHandler
	AuthMiddleware middleware.AuthMiddleware
	UserRepo       repository.UserRepository

	AuthRate  *middleware.RateLimiter
	LoginRate *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	users *handler.UserHandler,
	reference *handler.ReferenceHandler,
	authMiddleware middleware.AuthMiddleware,
	userRepo repository.UserRepository,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Users:          users,
		Reference:      reference,
		AuthMiddleware: authMiddleware,
		UserRepo:       userRepo,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/refresh", r.Auth.Refresh, r.AuthRate.Middleware())
	e.POST("/auth/2fa/setup", r.Auth.SetupTwoFactor, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/2fa/confirm", r.Auth.ConfirmTwoFactor, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/2fa/verify", r.Auth.VerifyTwoFactor, r.LoginRate.Middleware())

	e.GET("/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)

	e.GET("/categories", r.Reference.ListCategories, r.AuthMiddleware.RequireAuth)
	e.GET("/tags", r.Reference.ListTags, r.AuthMiddleware.RequireAuth)
	e.GET("/currencies", r.Reference.ListCurrencies, r.AuthMiddleware.RequireAuth)
	e.GET("/currencies/:code/rates", r.Reference.ListRates, r.AuthMiddleware.RequireAuth)

	admin := middleware.RequireRole(r.UserRepo, entity.RoleAdmin)
	e.GET("/users", r.Users.List, r.AuthMiddleware.RequireAuth, admin)
	e.POST("/users", r.Users.Create, r.AuthMiddleware.RequireAuth, admin)
	e.GET("/users/:id", r.Users.Get, r.AuthMiddleware.RequireAuth, admin)
	e.PATCH("/users/:id", r.Users.Update, r.AuthMiddleware.RequireAuth, admin)
	e.DELETE("/users/:id", r.Users.Delete, r.AuthMiddleware.RequireAuth, admin)
}
