package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditLoginSuccess    AuditAction = "login_success"
	AuditLoginFailed     AuditAction = "login_failed"
	AuditTwoFactorFailed AuditAction = "2fa_failed"
	AuditPasswordChanged AuditAction = "password_changed"
	AuditRegistered      AuditAction = "registered"
)

type AuditLog struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID *uuid.UUID `gorm:"type:uuid;index"`

	IPAddress *string        `gorm:"type:varchar(45)"`
	Action    AuditAction    `gorm:"type:varchar(50);not null;index"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
