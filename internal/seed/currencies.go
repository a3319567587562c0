package seed

import (
	"context"
	"errors"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type CurrencySeeder struct{}

func (CurrencySeeder) Name() string { return "currencies" }

func (CurrencySeeder) Run(ctx context.Context, db *gorm.DB) (int, error) {
	currencies := []entity.Currency{
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
		{Code: "GBP", Name: "British Pound", Symbol: "£"},
		{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
		{Code: "COP", Name: "Colombian Peso", Symbol: "$"},
	}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, currency := range currencies {
			var existing entity.Currency
			err := tx.Where("code = ?", currency.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&currency).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
