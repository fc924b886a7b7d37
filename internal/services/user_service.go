package services

import (
	stderrors "errors"
	"time"

	"nyumbani/internal/models"
	"nyumbani/pkg/errors"
	"nyumbani/pkg/pagination"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Authenticate checks credentials by username or email and stamps the login time
func (s *UserService) Authenticate(login, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewValidation("invalid username or password")
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, errors.NewValidation("invalid username or password")
	}
	if user.Status != models.UserStatusActive {
		return nil, errors.NewPermission("account is disabled")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID loads a user
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return &user, err
}

// IsActive reports whether the account may log in
func (s *UserService) IsActive(user *models.User) bool {
	return user.Status == models.UserStatusActive
}

// RegisterLandlordInput is the self-registration payload
type RegisterLandlordInput struct {
	Username        string
	Email           string
	Name            string
	Phone           *string
	Password        string
	ConfirmPassword string
}

// RegisterLandlord creates a landlord account
func (s *UserService) RegisterLandlord(input RegisterLandlordInput) (*models.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, errors.NewValidation("passwords do not match")
	}
	return s.createUser(input.Username, input.Email, input.Name, input.Phone, input.Password, models.RoleLandlord)
}

// CreateCaretakerInput is the caretaker creation payload
type CreateCaretakerInput struct {
	Username        string
	Email           string
	Name            string
	Phone           *string
	Password        string
	ConfirmPassword string
}

// CreateCaretaker creates a caretaker account on behalf of a landlord
func (s *UserService) CreateCaretaker(landlord *models.User, input CreateCaretakerInput) (*models.User, error) {
	if !landlord.IsLandlord() {
		return nil, errors.NewPermission("only landlords can create caretakers")
	}
	if input.Password != input.ConfirmPassword {
		return nil, errors.NewValidation("passwords do not match")
	}
	return s.createUser(input.Username, input.Email, input.Name, input.Phone, input.Password, models.RoleCaretaker)
}

func (s *UserService) createUser(username, email, name string, phone *string, password, role string) (*models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("username = ? OR email = ?", username, email).Count(&count)
	if count > 0 {
		return nil, errors.NewConflict("username or email already taken")
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Name:     name,
		Phone:    phone,
		Role:     role,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ListCaretakers returns caretaker accounts, paginated
func (s *UserService) ListCaretakers(params *pagination.PageParams) ([]models.User, int64, error) {
	var total int64
	query := s.db.Model(&models.User{}).Where("role = ?", models.RoleCaretaker)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var caretakers []models.User
	err := query.Order("name").
		Offset(params.GetOffset()).
		Limit(params.GetLimit()).
		Find(&caretakers).Error
	return caretakers, total, err
}
