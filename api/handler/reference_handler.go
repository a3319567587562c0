package handler

import (
	"errors"
	"net/http"

	"savesphere/internal/dto"
	"savesphere/internal/repository"

	"github.com/labstack/echo/v4"
)

// ReferenceHandler serves the seeded lookup tables read-only.
type ReferenceHandler struct {
	Categories repository.CategoryRepository
	Tags       repository.TagRepository
	Currencies repository.CurrencyRepository
	Rates      repository.ExchangeRateRepository
}

func (h *ReferenceHandler) ListCategories(c echo.Context) error {
	categories, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CategoryResponsesFromEntities(categories))
}

func (h *ReferenceHandler) ListTags(c echo.Context) error {
	tags, err := h.Tags.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TagResponsesFromEntities(tags))
}

func (h *ReferenceHandler) ListCurrencies(c echo.Context) error {
	currencies, err := h.Currencies.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CurrencyResponsesFromEntities(currencies))
}

func (h *ReferenceHandler) ListRates(c echo.Context) error {
	currency, err := h.Currencies.FindByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if currency == nil {
		return writeError(c, http.StatusNotFound, errors.New("currency not found"))
	}
	rates, err := h.Rates.ListByBase(c.Request().Context(), currency.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ExchangeRateResponsesFromEntities(rates))
}
