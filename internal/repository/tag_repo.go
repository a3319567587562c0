package repository

import (
	"context"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type TagRepository interface {
	List(ctx context.Context) ([]entity.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]entity.Tag, error) {
	var tags []entity.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
