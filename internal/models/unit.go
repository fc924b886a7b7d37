package models

import (
	"github.com/shopspring/decimal"
)

// Unit is a rentable room/house inside an apartment. Status mirrors whether
// an active tenancy exists; assign/vacate update both inside one transaction.
type Unit struct {
	BaseModel
	ApartmentID uint            `json:"apartment_id" gorm:"not null;index"`
	UnitNumber  string          `json:"unit_number" gorm:"not null;size:20"`
	Rent        decimal.Decimal `json:"rent" gorm:"type:decimal(10,2);not null"`
	Status      string          `json:"status" gorm:"not null;default:'VACANT';size:10"`

	Apartment *Apartment `json:"apartment,omitempty" gorm:"foreignKey:ApartmentID"`
	Tenancies []Tenancy  `json:"tenancies,omitempty" gorm:"foreignKey:UnitID"`
}

func (u *Unit) TableName() string {
	return "units"
}

// Unit status constants
const (
	UnitStatusVacant   = "VACANT"
	UnitStatusOccupied = "OCCUPIED"
)
