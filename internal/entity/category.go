package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

type Category struct {
	ID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name string          `gorm:"type:varchar(100);not null"`
	Slug string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	Type TransactionType `gorm:"type:varchar(20);not null"`

	CreatedAt time.Time
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
