package services

import (
	stderrors "errors"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"
	"nyumbani/pkg/pagination"

	"gorm.io/gorm"
)

type ApartmentService struct {
	db *gorm.DB
}

func NewApartmentService(db *gorm.DB) *ApartmentService {
	return &ApartmentService{db: db}
}

// Create adds an apartment owned by the landlord
func (s *ApartmentService) Create(landlord *models.User, name, location string, caretakerID *uint) (*models.Apartment, error) {
	if !landlord.IsLandlord() {
		return nil, errors.NewPermission("only landlords can create apartments")
	}
	if caretakerID != nil {
		if err := s.checkCaretaker(*caretakerID); err != nil {
			return nil, err
		}
	}

	apartment := &models.Apartment{
		LandlordID:  landlord.ID,
		CaretakerID: caretakerID,
		Name:        name,
		Location:    location,
	}
	if err := s.db.Create(apartment).Error; err != nil {
		return nil, err
	}
	return apartment, nil
}

// Update edits name/location; only the owning landlord may call this
func (s *ApartmentService) Update(landlord *models.User, id uint, name, location string) (*models.Apartment, error) {
	apartment, err := findApartmentFor(s.db, landlord, id)
	if err != nil {
		return nil, err
	}
	if !landlord.IsLandlord() {
		return nil, errors.NewPermission("only landlords can edit apartments")
	}

	apartment.Name = name
	apartment.Location = location
	if err := s.db.Save(apartment).Error; err != nil {
		return nil, err
	}
	return apartment, nil
}

// AssignCaretaker sets or clears the apartment caretaker
func (s *ApartmentService) AssignCaretaker(landlord *models.User, id uint, caretakerID *uint) (*models.Apartment, error) {
	apartment, err := findApartmentFor(s.db, landlord, id)
	if err != nil {
		return nil, err
	}
	if !landlord.IsLandlord() {
		return nil, errors.NewPermission("only landlords can assign caretakers")
	}
	if caretakerID != nil {
		if err := s.checkCaretaker(*caretakerID); err != nil {
			return nil, err
		}
	}

	apartment.CaretakerID = caretakerID
	if err := s.db.Model(apartment).Select("caretaker_id").Updates(map[string]interface{}{
		"caretaker_id": caretakerID,
	}).Error; err != nil {
		return nil, err
	}
	return apartment, nil
}

// GetByID loads an apartment the caller may access
func (s *ApartmentService) GetByID(user *models.User, id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	err := s.db.Preload("Caretaker").Preload("Units").First(&apartment, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("apartment not found")
		}
		return nil, err
	}
	if err := checkApartmentAccess(user, &apartment); err != nil {
		return nil, err
	}
	return &apartment, nil
}

// List returns the caller's apartments with unit counts, paginated
func (s *ApartmentService) List(user *models.User, params *pagination.PageParams) ([]models.Apartment, int64, error) {
	query := scopeApartments(s.db.Model(&models.Apartment{}), user)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apartments []models.Apartment
	err := query.
		Select("apartments.*, (SELECT COUNT(*) FROM units WHERE units.apartment_id = apartments.id) AS unit_count").
		Order("apartments.name").
		Offset(params.GetOffset()).
		Limit(params.GetLimit()).
		Preload("Caretaker").
		Find(&apartments).Error
	return apartments, total, err
}

func (s *ApartmentService) checkCaretaker(id uint) error {
	var caretaker models.User
	if err := s.db.First(&caretaker, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewNotFound("caretaker not found")
		}
		return err
	}
	if !caretaker.IsCaretaker() {
		return errors.NewValidation("assigned user is not a caretaker")
	}
	return nil
}
