package repository

import (
	"context"
	"errors"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type CurrencyRepository interface {
	FindByCode(ctx context.Context, code string) (*entity.Currency, error)
	List(ctx context.Context) ([]entity.Currency, error)
}

type currencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) FindByCode(ctx context.Context, code string) (*entity.Currency, error) {
	var currency entity.Currency
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&currency).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *currencyRepository) List(ctx context.Context) ([]entity.Currency, error) {
	var currencies []entity.Currency
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}
