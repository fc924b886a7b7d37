package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only event against one rent record. Rows are never
// updated; deleting one triggers the same recompute as creating one.
type Payment struct {
	BaseModel
	RentRecordID uint            `json:"rent_record_id" gorm:"not null;index"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Method       string          `json:"method" gorm:"not null;size:20"`
	Reference    string          `json:"reference" gorm:"size:100"`
	ReceivedByID *uint           `json:"received_by_id" gorm:"index"`
	PaidAt       time.Time       `json:"paid_at" gorm:"not null"`

	RentRecord *RentRecord `json:"rent_record,omitempty" gorm:"foreignKey:RentRecordID"`
	ReceivedBy *User       `json:"received_by,omitempty" gorm:"foreignKey:ReceivedByID"`
}

func (p *Payment) TableName() string {
	return "payments"
}

// Payment method constants
const (
	PaymentMethodCash  = "CASH"
	PaymentMethodMpesa = "MPESA"
	PaymentMethodBank  = "BANK"
)

// ValidPaymentMethod reports whether m is one of the accepted methods
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMpesa, PaymentMethodBank:
		return true
	}
	return false
}
