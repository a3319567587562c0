package seed

import (
	"context"
	"errors"
	"time"

	"savesphere/internal/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExchangeRateSeeder depends on CurrencySeeder having created the USD row.
// A missing USD currency is a soft skip, not a failure: no rates are created
// and the run continues.
type ExchangeRateSeeder struct {
	Logger *logrus.Logger
}

func (ExchangeRateSeeder) Name() string { return "exchange_rates" }

func (s ExchangeRateSeeder) Run(ctx context.Context, db *gorm.DB) (int, error) {
	rates := []struct {
		target string
		rate   float64
	}{
		{"EUR", 0.85},
		{"GBP", 0.73},
		{"JPY", 110.0},
		{"COP", 3800.0},
	}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var usd entity.Currency
		err := tx.Where("code = ?", "USD").First(&usd).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.Logger != nil {
				s.Logger.Warn("USD currency not found, skipping exchange rates; run the currency seeder first")
			}
			return nil
		}
		if err != nil {
			return err
		}

		today := time.Now().Truncate(24 * time.Hour)
		for _, rate := range rates {
			var existing entity.ExchangeRate
			err := tx.Where(
				"base_currency_id = ? AND target_currency = ? AND date = ?",
				usd.ID, rate.target, today,
			).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			row := entity.ExchangeRate{
				BaseCurrencyID: usd.ID,
				TargetCurrency: rate.target,
				Rate:           rate.rate,
				Date:           today,
			}
			if err := tx.Create(&row).Error; err != nil {
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
