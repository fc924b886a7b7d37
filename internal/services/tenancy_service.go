package services

import (
	stderrors "errors"
	"time"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TenancyService struct {
	db *gorm.DB
}

func NewTenancyService(db *gorm.DB) *TenancyService {
	return &TenancyService{db: db}
}

// AssignInput either references an existing tenant or carries the details
// for one created inline, the way the original assignment form worked
type AssignInput struct {
	TenantID  *uint
	NewTenant *TenantInput
	StartDate *time.Time
}

// Assign places a tenant into a vacant unit. Tenancy creation and the unit
// status flip happen in one transaction so the persisted flag cannot drift
// from the active tenancy.
func (s *TenancyService) Assign(user *models.User, unitID uint, input AssignInput) (*models.Tenancy, error) {
	if input.TenantID == nil && input.NewTenant == nil {
		return nil, errors.NewValidation("either tenant_id or a new tenant is required")
	}

	var tenancy *models.Tenancy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := lockForUpdate(tx).Preload("Apartment").First(&unit, unitID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewNotFound("unit not found")
			}
			return err
		}
		if err := checkApartmentAccess(user, unit.Apartment); err != nil {
			return err
		}

		if unit.Status == models.UnitStatusOccupied {
			return errors.NewValidation("this unit is already occupied")
		}
		// source-of-truth check on top of the persisted flag
		var active int64
		if err := tx.Model(&models.Tenancy{}).
			Where("unit_id = ? AND is_active = ?", unitID, true).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return errors.NewValidation("this unit is already occupied")
		}

		var tenantID uint
		if input.TenantID != nil {
			var tenant models.Tenant
			if err := tx.First(&tenant, *input.TenantID).Error; err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.NewNotFound("tenant not found")
				}
				return err
			}
			tenantID = tenant.ID
		} else {
			tenant := &models.Tenant{
				FullName:   input.NewTenant.FullName,
				Phone:      input.NewTenant.Phone,
				Email:      input.NewTenant.Email,
				NationalID: input.NewTenant.NationalID,
			}
			if err := tx.Create(tenant).Error; err != nil {
				return err
			}
			tenantID = tenant.ID
		}

		start := time.Now()
		if input.StartDate != nil {
			start = *input.StartDate
		}

		tenancy = &models.Tenancy{
			TenantID:  tenantID,
			UnitID:    unitID,
			StartDate: datatypes.Date(start),
			IsActive:  true,
		}
		if err := tx.Create(tenancy).Error; err != nil {
			return err
		}

		return tx.Model(&unit).Update("status", models.UnitStatusOccupied).Error
	})
	if err != nil {
		return nil, err
	}
	return tenancy, nil
}

// Vacate ends an active tenancy: stamps end_date, clears is_active and frees
// the unit, all in one transaction
func (s *TenancyService) Vacate(user *models.User, tenancyID uint) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Preload("Unit.Apartment").
			Where("is_active = ?", true).
			First(&tenancy, tenancyID).Error
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewNotFound("active tenancy not found")
			}
			return err
		}
		if err := checkApartmentAccess(user, tenancy.Unit.Apartment); err != nil {
			return err
		}

		end := datatypes.Date(time.Now())
		tenancy.IsActive = false
		tenancy.EndDate = &end
		if err := tx.Model(&tenancy).Updates(map[string]interface{}{
			"is_active": false,
			"end_date":  end,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Unit{}).
			Where("id = ?", tenancy.UnitID).
			Update("status", models.UnitStatusVacant).Error
	})
	if err != nil {
		return nil, err
	}
	return &tenancy, nil
}

// GetByID loads a tenancy the caller may access
func (s *TenancyService) GetByID(user *models.User, id uint) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	err := s.db.Preload("Tenant").Preload("Unit.Apartment").First(&tenancy, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("tenancy not found")
		}
		return nil, err
	}
	if err := checkApartmentAccess(user, tenancy.Unit.Apartment); err != nil {
		return nil, err
	}
	return &tenancy, nil
}

// ListByUnit returns the tenancy history of a unit, newest first
func (s *TenancyService) ListByUnit(user *models.User, unitID uint) ([]models.Tenancy, error) {
	var unit models.Unit
	if err := s.db.Preload("Apartment").First(&unit, unitID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("unit not found")
		}
		return nil, err
	}
	if err := checkApartmentAccess(user, unit.Apartment); err != nil {
		return nil, err
	}

	var tenancies []models.Tenancy
	err := s.db.Where("unit_id = ?", unitID).
		Order("start_date DESC").
		Preload("Tenant").
		Find(&tenancies).Error
	return tenancies, err
}
