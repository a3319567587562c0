// Package seed populates fixed reference data. Every seeder is idempotent:
// each candidate row is looked up by its natural key inside the seeder's
// transaction and inserted only when absent, so re-running never duplicates
// or overwrites rows. Seeding assumes a single writer.
package seed

import (
	"context"

	"savesphere/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Seeder interface {
	Name() string
	// Run applies the seeder's dataset and reports how many rows it created.
	Run(ctx context.Context, db *gorm.DB) (int, error)
}

// All returns the seeders in dependency order: roles and currencies must
// exist before the admin user and the exchange rates that reference them.
func All(hasher service.PasswordHasher, logger *logrus.Logger) []Seeder {
	return []Seeder{
		&RoleSeeder{},
		&UserSeeder{Hasher: hasher},
		&CategorySeeder{},
		&TagSeeder{},
		&CurrencySeeder{},
		&ExchangeRateSeeder{Logger: logger},
	}
}

// Run executes the seeders in order. Any error aborts the run; soft skips
// (missing prerequisite rows) are logged by the seeders themselves and do
// not stop the remaining datasets.
func Run(ctx context.Context, db *gorm.DB, logger *logrus.Logger, seeders []Seeder) error {
	for _, seeder := range seeders {
		created, err := seeder.Run(ctx, db)
		if err != nil {
			logger.WithError(err).WithField("seeder", seeder.Name()).Error("seeding failed")
			return err
		}
		logger.WithFields(logrus.Fields{
			"seeder":  seeder.Name(),
			"created": created,
		}).Info("seeded")
	}
	return nil
}
