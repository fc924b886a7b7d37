package models

// Tenant is a person renting units; created once, referenced by tenancies
type Tenant struct {
	BaseModel
	FullName   string  `json:"full_name" gorm:"not null;size:100;index"`
	Phone      string  `json:"phone" gorm:"not null;size:20"`
	Email      *string `json:"email" gorm:"size:100"`
	NationalID *string `json:"national_id" gorm:"size:50"`
}

func (t *Tenant) TableName() string {
	return "tenants"
}
