package database

import (
	"fmt"

	"nyumbani/internal/models"
	"nyumbani/pkg/logger"

	"gorm.io/gorm"
)

// Seed creates the default landlord account if no user exists yet
func Seed(db *gorm.DB) error {
	appLogger := logger.GetLogger()

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		appLogger.Info("Users already exist, skipping seed")
		return nil
	}

	landlord := &models.User{
		Username: "admin",
		Email:    "admin@nyumbani.local",
		Name:     "Default Landlord",
		Role:     models.RoleLandlord,
		Status:   models.UserStatusActive,
	}
	if err := landlord.SetPassword("admin123"); err != nil {
		return fmt.Errorf("failed to hash default password: %v", err)
	}

	if err := db.Create(landlord).Error; err != nil {
		return fmt.Errorf("failed to create default landlord: %v", err)
	}

	appLogger.Info("Seed completed: default landlord 'admin' created (change the password)")
	return nil
}
