package seed

import (
	"context"
	"errors"

	"savesphere/internal/entity"
	"savesphere/internal/service"

	"gorm.io/gorm"
)

// UserSeeder creates the bootstrap admin account. The password is hashed
// exactly like normal registration. A missing ADMIN role is self-healed so
// this seeder does not depend on RoleSeeder having run.
type UserSeeder struct {
	Hasher service.PasswordHasher
}

func (UserSeeder) Name() string { return "users" }

func (s UserSeeder) Run(ctx context.Context, db *gorm.DB) (int, error) {
	const (
		adminName     = "SaveSphere"
		adminEmail    = "savesphere@app.com"
		adminPassword = "8XAY=PQCT8ms"
	)

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.User
		err := tx.Where("email = ?", adminEmail).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var role entity.Role
		err = tx.Where("name = ?", entity.RoleAdmin).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = entity.Role{Name: entity.RoleAdmin}
			err = tx.Create(&role).Error
		}
		if err != nil {
			return err
		}

		hash, err := s.Hasher.Hash(adminPassword)
		if err != nil {
			return err
		}

		user := entity.User{
			Name:         adminName,
			Email:        adminEmail,
			PasswordHash: hash,
			RoleID:       role.ID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		history := entity.PasswordHistory{UserID: user.ID, PasswordHash: hash}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		created++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
