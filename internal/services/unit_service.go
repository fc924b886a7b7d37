package services

import (
	stderrors "errors"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UnitService struct {
	db *gorm.DB
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{db: db}
}

// Create adds a unit to an apartment owned by the landlord
func (s *UnitService) Create(landlord *models.User, apartmentID uint, unitNumber string, rent decimal.Decimal) (*models.Unit, error) {
	if !landlord.IsLandlord() {
		return nil, errors.NewPermission("only landlords can create units")
	}
	if _, err := findApartmentFor(s.db, landlord, apartmentID); err != nil {
		return nil, err
	}
	if rent.LessThanOrEqual(decimal.Zero) {
		return nil, errors.NewValidation("rent must be greater than zero")
	}

	unit := &models.Unit{
		ApartmentID: apartmentID,
		UnitNumber:  unitNumber,
		Rent:        rent,
		Status:      models.UnitStatusVacant,
	}
	if err := s.db.Create(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

// Update edits unit number and rent. Changing rent does not touch rent
// records already materialized; they keep their snapshot.
func (s *UnitService) Update(landlord *models.User, id uint, unitNumber string, rent decimal.Decimal) (*models.Unit, error) {
	unit, err := s.findUnitFor(landlord, id)
	if err != nil {
		return nil, err
	}
	if !landlord.IsLandlord() {
		return nil, errors.NewPermission("only landlords can edit units")
	}
	if rent.LessThanOrEqual(decimal.Zero) {
		return nil, errors.NewValidation("rent must be greater than zero")
	}

	unit.UnitNumber = unitNumber
	unit.Rent = rent
	if err := s.db.Save(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

// GetByID loads a unit the caller may access
func (s *UnitService) GetByID(user *models.User, id uint) (*models.Unit, error) {
	return s.findUnitFor(user, id)
}

// ListByApartment returns all units of an accessible apartment with their
// tenancy history preloaded
func (s *UnitService) ListByApartment(user *models.User, apartmentID uint) ([]models.Unit, error) {
	if _, err := findApartmentFor(s.db, user, apartmentID); err != nil {
		return nil, err
	}

	var units []models.Unit
	err := s.db.Where("apartment_id = ?", apartmentID).
		Order("unit_number").
		Preload("Tenancies", func(db *gorm.DB) *gorm.DB {
			return db.Order("tenancies.start_date DESC").Preload("Tenant")
		}).
		Find(&units).Error
	return units, err
}

func (s *UnitService) findUnitFor(user *models.User, id uint) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.Preload("Apartment").First(&unit, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("unit not found")
		}
		return nil, err
	}
	if err := checkApartmentAccess(user, unit.Apartment); err != nil {
		return nil, err
	}
	return &unit, nil
}
