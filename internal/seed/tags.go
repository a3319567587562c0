package seed

import (
	"context"
	"errors"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type TagSeeder struct{}

func (TagSeeder) Name() string { return "tags" }

func (TagSeeder) Run(ctx context.Context, db *gorm.DB) (int, error) {
	names := []string{"Important", "Personal", "Business", "Family", "Vacation"}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			var existing entity.Tag
			err := tx.Where("name = ?", name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&entity.Tag{Name: name}).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
