package seed

import (
	"context"
	"errors"

	"savesphere/internal/entity"

	"gorm.io/gorm"
)

type CategorySeeder struct{}

func (CategorySeeder) Name() string { return "categories" }

func (CategorySeeder) Run(ctx context.Context, db *gorm.DB) (int, error) {
	categories := []entity.Category{
		{Name: "Salary", Slug: "salary", Type: entity.TransactionIncome},
		{Name: "Investments", Slug: "investments", Type: entity.TransactionIncome},
		{Name: "Food", Slug: "food", Type: entity.TransactionExpense},
		{Name: "Transportation", Slug: "transportation", Type: entity.TransactionExpense},
		{Name: "Entertainment", Slug: "entertainment", Type: entity.TransactionExpense},
		{Name: "Bills", Slug: "bills", Type: entity.TransactionExpense},
		{Name: "Transfer", Slug: "transfer", Type: entity.TransactionTransfer},
	}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, category := range categories {
			var existing entity.Category
			err := tx.Where("slug = ?", category.Slug).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&category).Error; err != nil {
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
