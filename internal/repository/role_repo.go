package repository

import (
	"context"
	"errors"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}
