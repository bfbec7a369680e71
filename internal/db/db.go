package db

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/library-api/internal/config"
	"github.com/BruksfildServices01/library-api/internal/models"
)

const connectRetries = 5

// NewDB opens the Postgres connection, tunes the pool and migrates
// every library model.
func NewDB(cfg *config.Config, log hclog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
			PrepareStmt:    true,
			TranslateError: true,
			Logger:         NewGormLogger(log.Named("gorm")),
		})
		return err
	}

	// Postgres usually starts alongside the API in compose setups.
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectRetries)
	notify := func(err error, wait time.Duration) {
		log.Warn("database not ready, retrying", "wait", wait, "error", err)
	}
	if err := backoff.RetryNotify(connect, policy, notify); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
