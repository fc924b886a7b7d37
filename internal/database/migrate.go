package database

import (
	"nyumbani/internal/models"
	"nyumbani/pkg/logger"

	"gorm.io/gorm"
)

// Migrate runs schema migration
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB migrates the given handle; the CLI and tests pass their own
func MigrateDB(db *gorm.DB) error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Apartment{},
		&models.Unit{},
		&models.Tenancy{},
		&models.RentRecord{},
		&models.Payment{},
	)
	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	// Partial unique index backstopping the one-active-tenancy-per-unit
	// invariant. AutoMigrate cannot express a conditional index; both
	// postgres and sqlite accept this form.
	err = db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tenancies_one_active_per_unit " +
			"ON tenancies (unit_id) WHERE is_active",
	).Error
	if err != nil {
		appLogger.Errorf("Creating active tenancy index failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
