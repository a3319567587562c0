package main

import (
	"context"
	"os"

	"savesphere/config"
	"savesphere/internal/entity"
	"savesphere/internal/seed"
	"savesphere/internal/service"

	"github.com/sirupsen/logrus"
)

// One-shot reference-data seeder. Safe to re-run: every dataset is upserted
// by natural key. Exits non-zero on any hard failure so deploy scripts can
// gate on it.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("configuration")
	}

	db, err := config.OpenDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}
	defer func() {
		_ = config.CloseDatabase(db)
	}()

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.PasswordHistory{},
		&entity.Category{},
		&entity.Tag{},
		&entity.Currency{},
		&entity.ExchangeRate{},
		&entity.AuditLog{},
	); err != nil {
		logger.WithError(err).Fatal("migration")
	}

	hasher := service.BcryptPasswordHasher{Cost: cfg.BcryptCost}
	seeders := seed.All(hasher, logger)

	logger.Info("starting seed")
	if err := seed.Run(context.Background(), db, logger, seeders); err != nil {
		logger.WithError(err).Fatal("seed aborted")
	}
	logger.Info("seed completed")
}
