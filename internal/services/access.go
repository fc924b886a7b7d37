package services

import (
	stderrors "errors"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// checkApartmentAccess verifies the caller owns (landlord) or manages
// (caretaker) the apartment. The core trusts the authenticated principal;
// this is the ownership check on top of it.
func checkApartmentAccess(user *models.User, apartment *models.Apartment) error {
	switch {
	case user.IsLandlord():
		if apartment.LandlordID != user.ID {
			return errors.NewPermission("you do not own this apartment")
		}
	case user.IsCaretaker():
		if apartment.CaretakerID == nil || *apartment.CaretakerID != user.ID {
			return errors.NewPermission("you do not manage this apartment")
		}
	default:
		return errors.NewPermission("role cannot access apartments")
	}
	return nil
}

// findApartmentFor loads the apartment and runs the access check in one step
func findApartmentFor(db *gorm.DB, user *models.User, apartmentID uint) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := db.First(&apartment, apartmentID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("apartment not found")
		}
		return nil, err
	}
	if err := checkApartmentAccess(user, &apartment); err != nil {
		return nil, err
	}
	return &apartment, nil
}

// scopeApartments restricts an apartment-joined query to the caller's scope:
// landlords see apartments they own, caretakers apartments assigned to them.
func scopeApartments(query *gorm.DB, user *models.User) *gorm.DB {
	if user.IsCaretaker() {
		return query.Where("apartments.caretaker_id = ?", user.ID)
	}
	return query.Where("apartments.landlord_id = ?", user.ID)
}

// lockForUpdate takes a row lock where the dialect supports it. SQLite has
// no row locks; its single-writer transaction model serializes anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
