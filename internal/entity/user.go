package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:text;not null"`

	TwoFactorSecret  *string `gorm:"type:text"`
	TwoFactorEnabled bool    `gorm:"default:false;not null"`

	RoleID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role   Role

	CreatedAt time.Time
	UpdatedAt time.Time

	PasswordHistory []PasswordHistory
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
