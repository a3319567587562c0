package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Currency struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code   string    `gorm:"type:varchar(3);uniqueIndex;not null"`
	Name   string    `gorm:"type:varchar(100);not null"`
	Symbol string    `gorm:"type:varchar(10);not null"`

	CreatedAt time.Time
}

func (c *Currency) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
