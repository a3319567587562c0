package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"savesphere/api/handler"
	"savesphere/api/middleware"
	"savesphere/api/routes"
	"savesphere/internal/entity"
	"savesphere/internal/repository"
	"savesphere/internal/service"
	"savesphere/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.PasswordHistory{},
		&entity.Category{},
		&entity.Tag{},
		&entity.Currency{},
		&entity.ExchangeRate{},
		&entity.AuditLog{},
	))
	for _, name := range []entity.RoleName{entity.RoleAdmin, entity.RoleUser, entity.RoleManager} {
		require.NoError(t, db.Create(&entity.Role{Name: name}).Error)
	}

	tokens := &utils.TokenManager{
		AccessSecret:  []byte("test-access"),
		RefreshSecret: []byte("test-refresh"),
		Issuer:        "savesphere-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		ChallengeTTL:  5 * time.Minute,
	}

	userRepo := repository.NewUserRepository(db)
	hasher := service.BcryptPasswordHasher{Cost: 4}
	authService := service.NewAuthService(
		userRepo,
		repository.NewRoleRepository(db),
		repository.NewAuditLogRepository(db),
		hasher,
		service.JWTTokenIssuer{Manager: tokens},
		service.NewTOTPProvider("SaveSphere"),
	)
	userService := service.NewUserService(
		userRepo,
		repository.NewRoleRepository(db),
		repository.NewPasswordHistoryRepository(db),
		repository.NewAuditLogRepository(db),
		hasher,
		service.AuthConfig{},
	)

	validate := validator.New()
	app := echo.New()
	router := routes.NewRouter(
		app,
		handler.NewAuthHandler(authService, validate),
		handler.NewUserHandler(userService, validate),
		&handler.ReferenceHandler{
			Categories: repository.NewCategoryRepository(db),
			Tags:       repository.NewTagRepository(db),
			Currencies: repository.NewCurrencyRepository(db),
			Rates:      repository.NewExchangeRateRepository(db),
		},
		middleware.AuthMiddleware{Tokens: tokens},
		userRepo,
	)
	router.RegisterRoutes()
	return app
}

func doJSON(app *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	body := `{"email":"a@b.com","password":"Str0ng!Pass","name":"A"}`
	rec := doJSON(app, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "a@b.com", response.User.Email)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)

	rec = doJSON(app, http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(app, http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"Str0ng!Pass","name":"A"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(app, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"short","name":"A"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginAndMeEndpoints(t *testing.T) {
	app := newTestApp(t)

	body := `{"email":"a@b.com","password":"Str0ng!Pass","name":"A"}`
	rec := doJSON(app, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(app, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(app, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"Str0ng!Pass"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	rec = doJSON(app, http.MethodGet, "/me", "", login.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(app, http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(app, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"Str0ng!Pass","name":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = doJSON(app, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+registered.RefreshToken+`"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(app, http.MethodPost, "/auth/refresh", `{"refresh_token":"garbage"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(app, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"Str0ng!Pass","name":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = doJSON(app, http.MethodGet, "/users", "", registered.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
