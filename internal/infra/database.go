package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// invoice schema. The schema is small and owned entirely by this service, so
// AutoMigrate is sufficient — no hand-written migration files.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also called by integration tests against
// their throwaway containers.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&model.Invoice{})
}
