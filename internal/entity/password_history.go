package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordHistory is append-only: a row is written on every successful
// password set and never mutated afterwards.
type PasswordHistory struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	PasswordHash string `gorm:"type:text;not null"`

	CreatedAt time.Time
}

func (p *PasswordHistory) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
