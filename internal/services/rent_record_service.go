package services

import (
	stderrors "errors"
	"time"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"
	"nyumbani/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RentRecordService struct {
	db *gorm.DB
}

func NewRentRecordService(db *gorm.DB) *RentRecordService {
	return &RentRecordService{db: db}
}

// monthBounds returns the first and last day of a calendar month
func monthBounds(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// EnsureRentRecords materializes the rent obligation of every tenancy under
// the landlord's apartments whose interval overlaps (year, month). Ended
// tenancies are included when their dates overlap the month, so reconciling
// a past month stays correct for retroactive reporting. Future months are a
// no-op. Idempotent: existing records are skipped, never touched. The whole
// batch commits in one transaction.
func (s *RentRecordService) EnsureRentRecords(landlordID uint, year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, errors.NewValidation("month must be between 1 and 12")
	}

	now := time.Now()
	if year > now.Year() || (year == now.Year() && month > int(now.Month())) {
		// obligations are never materialized for the future
		return 0, nil
	}

	firstDay, lastDay := monthBounds(year, month)

	// Overlap test runs on the tenancy's own dates, independent of
	// is_active: an ended tenancy still owes rent for months it covered.
	var tenancies []models.Tenancy
	err := s.db.
		Joins("JOIN units ON units.id = tenancies.unit_id").
		Joins("JOIN apartments ON apartments.id = units.apartment_id").
		Where("apartments.landlord_id = ?", landlordID).
		Where("tenancies.start_date <= ?", lastDay).
		Where("tenancies.end_date IS NULL OR tenancies.end_date >= ?", firstDay).
		Preload("Unit").
		Find(&tenancies).Error
	if err != nil {
		return 0, err
	}
	if len(tenancies) == 0 {
		return 0, nil
	}

	tenancyIDs := make([]uint, 0, len(tenancies))
	for _, t := range tenancies {
		tenancyIDs = append(tenancyIDs, t.ID)
	}

	// Existence check up front so one already-materialized tenancy cannot
	// abort the batch on the unique index; the index stays as a backstop.
	var existing []models.RentRecord
	err = s.db.
		Where("tenancy_id IN ? AND year = ? AND month = ?", tenancyIDs, year, month).
		Find(&existing).Error
	if err != nil {
		return 0, err
	}
	materialized := make(map[uint]bool, len(existing))
	for _, r := range existing {
		materialized[r.TenancyID] = true
	}

	var toCreate []models.RentRecord
	for _, t := range tenancies {
		if materialized[t.ID] {
			continue
		}
		toCreate = append(toCreate, models.RentRecord{
			TenancyID:  t.ID,
			Year:       year,
			Month:      month,
			RentAmount: t.Unit.Rent, // snapshot, immutable thereafter
			TotalPaid:  decimal.Zero,
			Status:     models.RentStatusUnpaid,
		})
	}
	if len(toCreate) == 0 {
		return 0, nil
	}

	// all-or-nothing: no half-materialized month
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		return 0, err
	}

	logger.GetLogger().Infof("Materialized %d rent records for landlord %d (%d-%02d)",
		len(toCreate), landlordID, year, month)
	return len(toCreate), nil
}

// GetByID loads a rent record the caller may access, payments included
func (s *RentRecordService) GetByID(user *models.User, id uint) (*models.RentRecord, error) {
	var record models.RentRecord
	err := s.db.
		Preload("Tenancy.Tenant").
		Preload("Tenancy.Unit.Apartment").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.paid_at")
		}).
		First(&record, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("rent record not found")
		}
		return nil, err
	}
	if err := checkApartmentAccess(user, record.Tenancy.Unit.Apartment); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByTenancy returns all rent records of a tenancy, newest period first
func (s *RentRecordService) ListByTenancy(user *models.User, tenancyID uint) ([]models.RentRecord, error) {
	var tenancy models.Tenancy
	err := s.db.Preload("Unit.Apartment").First(&tenancy, tenancyID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("tenancy not found")
		}
		return nil, err
	}
	if err := checkApartmentAccess(user, tenancy.Unit.Apartment); err != nil {
		return nil, err
	}

	var records []models.RentRecord
	err = s.db.Where("tenancy_id = ?", tenancyID).
		Order("year DESC, month DESC").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.paid_at")
		}).
		Find(&records).Error
	return records, err
}
