package repository

import (
	"context"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Log(ctx context.Context, log *entity.AuditLog) error
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Log(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
