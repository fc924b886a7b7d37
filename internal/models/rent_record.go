package models

import (
	"github.com/shopspring/decimal"
)

// RentRecord is the rent obligation of one tenancy for one calendar month.
// RentAmount is a snapshot of the unit rent at materialization time.
// TotalPaid and Status are derived fields; the payment service recompute is
// their only writer.
type RentRecord struct {
	BaseModel
	TenancyID  uint            `json:"tenancy_id" gorm:"not null;uniqueIndex:idx_rent_records_period;index"`
	Year       int             `json:"year" gorm:"not null;uniqueIndex:idx_rent_records_period"`
	Month      int             `json:"month" gorm:"not null;uniqueIndex:idx_rent_records_period"`
	RentAmount decimal.Decimal `json:"rent_amount" gorm:"type:decimal(10,2);not null"`
	TotalPaid  decimal.Decimal `json:"total_paid" gorm:"type:decimal(10,2);not null;default:0"`
	Status     string          `json:"status" gorm:"not null;default:'UNPAID';size:20;index"`

	Tenancy  *Tenancy  `json:"tenancy,omitempty" gorm:"foreignKey:TenancyID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:RentRecordID"`
}

func (r *RentRecord) TableName() string {
	return "rent_records"
}

// Rent record status constants
const (
	RentStatusUnpaid  = "UNPAID"
	RentStatusPartial = "PARTIAL"
	RentStatusPaid    = "PAID"
)

// Balance is the outstanding amount on this record
func (r *RentRecord) Balance() decimal.Decimal {
	return r.RentAmount.Sub(r.TotalPaid)
}

// IsFullyPaid reports whether nothing is outstanding
func (r *RentRecord) IsFullyPaid() bool {
	return r.Balance().LessThanOrEqual(decimal.Zero)
}
