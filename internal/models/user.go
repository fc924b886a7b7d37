package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an authenticated principal: a landlord who owns apartments or a
// caretaker assigned to manage them
type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"unique;not null;size:50;index"`
	Email        string     `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Name         string     `json:"name" gorm:"not null;size:100"`
	Phone        *string    `json:"phone" gorm:"size:20"`
	Role         string     `json:"role" gorm:"not null;size:20;index"`
	Status       string     `json:"status" gorm:"default:'active';size:20"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

func (u *User) TableName() string {
	return "users"
}

// Role constants
const (
	RoleLandlord  = "LANDLORD"
	RoleCaretaker = "CARETAKER"
)

// Status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

func (u *User) IsLandlord() bool {
	return u.Role == RoleLandlord
}

func (u *User) IsCaretaker() bool {
	return u.Role == RoleCaretaker
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
