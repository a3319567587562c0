package dto

import (
	"time"

	"savesphere/internal/entity"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Type string `json:"type"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CurrencyResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type ExchangeRateResponse struct {
	TargetCurrency string    `json:"target_currency"`
	Rate           float64   `json:"rate"`
	Date           time.Time `json:"date"`
}

func CategoryResponsesFromEntities(categories []entity.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, CategoryResponse{
			ID:   category.ID.String(),
			Name: category.Name,
			Slug: category.Slug,
			Type: string(category.Type),
		})
	}
	return responses
}

func TagResponsesFromEntities(tags []entity.Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, TagResponse{ID: tag.ID.String(), Name: tag.Name})
	}
	return responses
}

func CurrencyResponsesFromEntities(currencies []entity.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, 0, len(currencies))
	for _, currency := range currencies {
		responses = append(responses, CurrencyResponse{
			ID:     currency.ID.String(),
			Code:   currency.Code,
			Name:   currency.Name,
			Symbol: currency.Symbol,
		})
	}
	return responses
}

func ExchangeRateResponsesFromEntities(rates []entity.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, 0, len(rates))
	for _, rate := range rates {
		responses = append(responses, ExchangeRateResponse{
			TargetCurrency: rate.TargetCurrency,
			Rate:           rate.Rate,
			Date:           rate.Date,
		})
	}
	return responses
}
