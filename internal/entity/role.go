package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleName string

const (
	RoleAdmin   RoleName = "ADMIN"
	RoleUser    RoleName = "USER"
	RoleManager RoleName = "MANAGER"
)

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name RoleName  `gorm:"type:varchar(50);uniqueIndex;not null"`

	CreatedAt time.Time
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
