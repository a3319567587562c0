package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExchangeRate is unique per (base currency, target code, date).
type ExchangeRate struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BaseCurrencyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rate_base_target_date"`
	BaseCurrency   Currency  `gorm:"constraint:OnDelete:CASCADE"`

	TargetCurrency string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_rate_base_target_date"`
	Rate           float64   `gorm:"not null"`
	Date           time.Time `gorm:"not null;uniqueIndex:idx_rate_base_target_date"`

	CreatedAt time.Time
}

func (r *ExchangeRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
