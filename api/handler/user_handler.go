package handler

import (
	"errors"
	"net/http"

	"savesphere/internal/dto"
	"savesphere/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service  *service.UserService
	Validate *validator.Validate
}

func NewUserHandler(svc *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{Service: svc, Validate: validate}
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	user, err := h.Service.Create(c.Request().Context(), service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	users, total, err := h.Service.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserPageFromEntities(users, total, limit, offset))
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	user, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	var req dto.UpdateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	user, err := h.Service.Update(c.Request().Context(), id, service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
