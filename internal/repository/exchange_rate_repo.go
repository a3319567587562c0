package repository

import (
	"context"

	"savesphere/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExchangeRateRepository interface {
	ListByBase(ctx context.Context, baseCurrencyID uuid.UUID) ([]entity.ExchangeRate, error)
}

type exchangeRateRepository struct {
	db *gorm.DB
}

func NewExchangeRateRepository(db *gorm.DB) ExchangeRateRepository {
	return &exchangeRateRepository{db: db}
}

func (r *exchangeRateRepository) ListByBase(ctx context.Context, baseCurrencyID uuid.UUID) ([]entity.ExchangeRate, error) {
	var rates []entity.ExchangeRate
	err := r.db.WithContext(ctx).
		Where("base_currency_id = ?", baseCurrencyID).
		Order("target_currency ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}
