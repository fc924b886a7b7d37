package models

import (
	"gorm.io/datatypes"
)

// Tenancy links one tenant to one unit over [start_date, end_date?). At most
// one active tenancy may exist per unit; a partial unique index backstops
// this (see database.Migrate).
type Tenancy struct {
	BaseModel
	TenantID  uint            `json:"tenant_id" gorm:"not null;index"`
	UnitID    uint            `json:"unit_id" gorm:"not null;index"`
	StartDate datatypes.Date  `json:"start_date" gorm:"not null"`
	EndDate   *datatypes.Date `json:"end_date"`
	IsActive  bool            `json:"is_active" gorm:"not null;default:true;index"`

	Tenant      *Tenant      `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Unit        *Unit        `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	RentRecords []RentRecord `json:"rent_records,omitempty" gorm:"foreignKey:TenancyID"`
}

func (t *Tenancy) TableName() string {
	return "tenancies"
}
