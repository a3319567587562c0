package repository

import (
	"context"

	"savesphere/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PasswordHistoryRepository interface {
	// RecentByUser returns up to limit history rows, newest first.
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.PasswordHistory, error)
}

type passwordHistoryRepository struct {
	db *gorm.DB
}

func NewPasswordHistoryRepository(db *gorm.DB) PasswordHistoryRepository {
	return &passwordHistoryRepository{db: db}
}

func (r *passwordHistoryRepository) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.PasswordHistory, error) {
	var entries []entity.PasswordHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
