package seed

import (
	"context"
	"errors"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type RoleSeeder struct{}

func (RoleSeeder) Name() string { return "roles" }

func (RoleSeeder) Run(ctx context.Context, db *gorm.DB) (int, error) {
	names := []entity.RoleName{entity.RoleAdmin, entity.RoleUser, entity.RoleManager}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			var existing entity.Role
			err := tx.Where("name = ?", name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&entity.Role{Name: name}).Error; err != nil {
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
