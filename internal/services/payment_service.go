package services

import (
	stderrors "errors"
	"strings"
	"time"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// RecordPayment appends a payment to a rent record and recomputes the
// record's aggregate. The balance precondition is re-checked on a locked row
// inside the transaction, so two concurrent payments cannot double-spend the
// remaining balance.
func (s *PaymentService) RecordPayment(user *models.User, rentRecordID uint, amount decimal.Decimal, method, reference string) (*models.Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.NewValidation("amount must be greater than zero")
	}
	if !models.ValidPaymentMethod(method) {
		return nil, errors.NewValidation("payment method must be CASH, MPESA or BANK")
	}

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record models.RentRecord
		err := lockForUpdate(tx).First(&record, rentRecordID).Error
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewNotFound("rent record not found")
			}
			return err
		}
		if err := s.checkRecordAccess(tx, user, &record); err != nil {
			return err
		}

		if amount.GreaterThan(record.Balance()) {
			return errors.NewValidation("payment exceeds outstanding balance of " + record.Balance().StringFixed(2))
		}

		if reference == "" {
			reference = generateReceiptNumber()
		}

		payment = &models.Payment{
			RentRecordID: record.ID,
			Amount:       amount,
			Method:       method,
			Reference:    reference,
			ReceivedByID: &user.ID,
			PaidAt:       time.Now(),
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return s.recalculate(tx, &record)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment removes a payment and recomputes its record's aggregate in
// the same transaction
func (s *PaymentService) DeletePayment(user *models.User, paymentID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewNotFound("payment not found")
			}
			return err
		}

		var record models.RentRecord
		if err := lockForUpdate(tx).First(&record, payment.RentRecordID).Error; err != nil {
			return err
		}
		if err := s.checkRecordAccess(tx, user, &record); err != nil {
			return err
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		return s.recalculate(tx, &record)
	})
}

// ListByRecord returns the payments of a rent record, oldest first
func (s *PaymentService) ListByRecord(user *models.User, rentRecordID uint) ([]models.Payment, error) {
	var record models.RentRecord
	if err := s.db.First(&record, rentRecordID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("rent record not found")
		}
		return nil, err
	}
	if err := s.checkRecordAccess(s.db, user, &record); err != nil {
		return nil, err
	}

	var payments []models.Payment
	err := s.db.Where("rent_record_id = ?", rentRecordID).
		Order("paid_at").
		Preload("ReceivedBy").
		Find(&payments).Error
	return payments, err
}

// recalculate derives total_paid and status from the surviving payments.
// Always a full recompute from source rather than an increment: self-healing
// against any missed update, and the sole writer of both fields.
func (s *PaymentService) recalculate(tx *gorm.DB, record *models.RentRecord) error {
	var row struct {
		Total decimal.Decimal
	}
	err := tx.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("rent_record_id = ?", record.ID).
		Scan(&row).Error
	if err != nil {
		return err
	}

	status := models.RentStatusUnpaid
	switch {
	case row.Total.IsZero():
		status = models.RentStatusUnpaid
	case row.Total.LessThan(record.RentAmount):
		status = models.RentStatusPartial
	default:
		status = models.RentStatusPaid
	}

	record.TotalPaid = row.Total
	record.Status = status
	return tx.Model(&models.RentRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"total_paid": row.Total,
			"status":     status,
		}).Error
}

// checkRecordAccess walks rent record -> tenancy -> unit -> apartment and
// applies the ownership check
func (s *PaymentService) checkRecordAccess(tx *gorm.DB, user *models.User, record *models.RentRecord) error {
	var tenancy models.Tenancy
	if err := tx.Preload("Unit.Apartment").First(&tenancy, record.TenancyID).Error; err != nil {
		return err
	}
	return checkApartmentAccess(user, tenancy.Unit.Apartment)
}

func generateReceiptNumber() string {
	return "RCPT-" + strings.ToUpper(uuid.NewString()[:8])
}
