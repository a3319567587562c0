package main

import (
	"net/http"
	"os"
	"time"

	"savesphere/api/handler"
	apiMiddleware "savesphere/api/middleware"
	"savesphere/api/routes"
	"savesphere/config"
	"savesphere/internal/repository"
	"savesphere/internal/service"
	"savesphere/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("configuration")
	}
	if err := cfg.RequireJWTSecrets(); err != nil {
		logger.WithError(err).Fatal("configuration")
	}

	db, err := config.OpenDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logger.WithError(err).Warn("closing database")
		}
	}()

	tokens := &utils.TokenManager{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Issuer:        cfg.JWTIssuer,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		ChallengeTTL:  cfg.ChallengeTTL,
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	historyRepo := repository.NewPasswordHistoryRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	hasher := service.BcryptPasswordHasher{Cost: cfg.BcryptCost}

	authService := service.NewAuthService(
		userRepo,
		roleRepo,
		auditRepo,
		hasher,
		service.JWTTokenIssuer{Manager: tokens},
		service.NewTOTPProvider(cfg.TOTPIssuer),
	)
	userService := service.NewUserService(userRepo, roleRepo, historyRepo, auditRepo, hasher, service.AuthConfig{})

	validate := validator.New()
	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(userService, validate)
	referenceHandler := &handler.ReferenceHandler{
		Categories: repository.NewCategoryRepository(db),
		Tags:       repository.NewTagRepository(db),
		Currencies: repository.NewCurrencyRepository(db),
		Rates:      repository.NewExchangeRateRepository(db),
	}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Tokens: tokens}
	router := routes.NewRouter(app, authHandler, userHandler, referenceHandler, authMiddleware, userRepo)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
