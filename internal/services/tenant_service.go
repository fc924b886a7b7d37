package services

import (
	stderrors "errors"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"
	"nyumbani/pkg/pagination"

	"gorm.io/gorm"
)

type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// TenantInput is the create/update payload
type TenantInput struct {
	FullName   string
	Phone      string
	Email      *string
	NationalID *string
}

// Create registers a tenant
func (s *TenantService) Create(input TenantInput) (*models.Tenant, error) {
	tenant := &models.Tenant{
		FullName:   input.FullName,
		Phone:      input.Phone,
		Email:      input.Email,
		NationalID: input.NationalID,
	}
	if err := s.db.Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// Update edits tenant contact details
func (s *TenantService) Update(id uint, input TenantInput) (*models.Tenant, error) {
	tenant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	tenant.FullName = input.FullName
	tenant.Phone = input.Phone
	tenant.Email = input.Email
	tenant.NationalID = input.NationalID
	if err := s.db.Save(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// GetByID loads a tenant
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("tenant not found")
		}
		return nil, err
	}
	return &tenant, nil
}

// List returns tenants, optionally filtered by a name/phone search term
func (s *TenantService) List(search string, params *pagination.PageParams) ([]models.Tenant, int64, error) {
	query := s.db.Model(&models.Tenant{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tenants []models.Tenant
	err := query.Order("full_name").
		Offset(params.GetOffset()).
		Limit(params.GetLimit()).
		Find(&tenants).Error
	return tenants, total, err
}
