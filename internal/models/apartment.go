package models

// Apartment is a building owned by exactly one landlord, optionally managed
// by one caretaker
type Apartment struct {
	BaseModel
	LandlordID  uint    `json:"landlord_id" gorm:"not null;index"`
	CaretakerID *uint   `json:"caretaker_id" gorm:"index"`
	Name        string  `json:"name" gorm:"not null;size:100"`
	Location    string  `json:"location" gorm:"not null;size:255"`
	UnitCount   int64   `json:"unit_count" gorm:"-"` // filled by list queries, not stored

	Landlord  *User  `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
	Caretaker *User  `json:"caretaker,omitempty" gorm:"foreignKey:CaretakerID"`
	Units     []Unit `json:"units,omitempty" gorm:"foreignKey:ApartmentID"`
}

func (a *Apartment) TableName() string {
	return "apartments"
}
