package services

import (
	"testing"

	"nyumbani/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLandlordAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	user, err := service.RegisterLandlord(RegisterLandlordInput{
		Username:        "wanjiru",
		Email:           "wanjiru@example.com",
		Name:            "Wanjiru Kariuki",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleLandlord, user.Role)
	assert.True(t, user.IsLandlord())

	// login works by username and by email
	got, err := service.Authenticate("wanjiru", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotNil(t, got.LastLoginAt)

	_, err = service.Authenticate("wanjiru@example.com", "secret123")
	require.NoError(t, err)

	_, err = service.Authenticate("wanjiru", "wrong")
	assert.Error(t, err)
}

func TestRegisterLandlordPasswordMismatch(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	_, err := service.RegisterLandlord(RegisterLandlordInput{
		Username:        "wanjiru",
		Email:           "wanjiru@example.com",
		Name:            "Wanjiru Kariuki",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})
	assert.Error(t, err)
}

func TestRegisterLandlordDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	input := RegisterLandlordInput{
		Username:        "wanjiru",
		Email:           "wanjiru@example.com",
		Name:            "Wanjiru Kariuki",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
	_, err := service.RegisterLandlord(input)
	require.NoError(t, err)

	_, err = service.RegisterLandlord(input)
	assert.Error(t, err)
}

func TestCreateCaretakerRequiresLandlord(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	landlord := createLandlord(t, db)
	caretaker, err := service.CreateCaretaker(landlord, CreateCaretakerInput{
		Username:        "odhiambo",
		Email:           "odhiambo@example.com",
		Name:            "Odhiambo Owuor",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaretaker, caretaker.Role)

	_, err = service.CreateCaretaker(caretaker, CreateCaretakerInput{
		Username:        "another",
		Email:           "another@example.com",
		Name:            "Another One",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	assert.Error(t, err)
}
