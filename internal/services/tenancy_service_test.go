package services

import (
	"testing"
	"time"

	"nyumbani/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignCreatesTenancyAndOccupiesUnit(t *testing.T) {
	db := newTestDB(t)
	service := NewTenancyService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "A1", 10000)

	tenancy, err := service.Assign(landlord, unit.ID, AssignInput{
		NewTenant: &TenantInput{FullName: "Alice Wanjiku", Phone: "+254711000111"},
	})
	require.NoError(t, err)
	assert.True(t, tenancy.IsActive)
	assert.Nil(t, tenancy.EndDate)

	var reloaded models.Unit
	require.NoError(t, db.First(&reloaded, unit.ID).Error)
	assert.Equal(t, models.UnitStatusOccupied, reloaded.Status)

	var tenant models.Tenant
	require.NoError(t, db.First(&tenant, tenancy.TenantID).Error)
	assert.Equal(t, "Alice Wanjiku", tenant.FullName)
}

func TestAssignExistingTenant(t *testing.T) {
	db := newTestDB(t)
	service := NewTenancyService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "A1", 10000)
	tenant := createTenant(t, db, "Brian Otieno")

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tenancy, err := service.Assign(landlord, unit.ID, AssignInput{
		TenantID:  &tenant.ID,
		StartDate: &start,
	})
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, tenancy.TenantID)
}

func TestAssignOccupiedUnitRejected(t *testing.T) {
	db := newTestDB(t)
	service := NewTenancyService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "A1", 10000)
	createTenancy(t, db, createTenant(t, db, "Carol Njeri"), unit, time.Now().UTC().AddDate(0, -1, 0), nil, true)

	_, err := service.Assign(landlord, unit.ID, AssignInput{
		NewTenant: &TenantInput{FullName: "David Kamau", Phone: "+254722000222"},
	})
	require.Error(t, err)

	// no tenant row leaks from the rejected assignment
	var count int64
	require.NoError(t, db.Model(&models.Tenant{}).Where("full_name = ?", "David Kamau").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAssignRequiresTenant(t *testing.T) {
	db := newTestDB(t)
	service := NewTenancyService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "A1", 10000)

	_, err := service.Assign(landlord, unit.ID, AssignInput{})
	assert.Error(t, err)
}

func TestAssignDeniedOutsideScope(t *testing.T) {
	db := newTestDB(t)
	service := NewTenancyService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "A1", 10000)

	outsider := createLandlord(t, db)
	_, err := service.Assign(outsider, unit.ID, AssignInput{
		NewTenant: &TenantInput{FullName: "Esther Achieng", Phone: "+254733000333"},
	})
	require.Error(t, err)

	unassigned := createCaretaker(t, db)
	_, err = service.Assign(unassigned, unit.ID, AssignInput{
		NewTenant: &TenantInput{FullName: "Esther Achieng", Phone: "+254733000333"},
	})
	require.Error(t, err)
}

func TestVacateFreesUnitForReassignment(t *testing.T) {
	db := newTestDB(t)
	service := NewTenancyService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "A1", 10000)
	tenancy := createTenancy(t, db, createTenant(t, db, "Frank Mwangi"), unit, time.Now().UTC().AddDate(0, -2, 0), nil, true)

	vacated, err := service.Vacate(landlord, tenancy.ID)
	require.NoError(t, err)
	assert.False(t, vacated.IsActive)
	assert.NotNil(t, vacated.EndDate)

	var reloadedUnit models.Unit
	require.NoError(t, db.First(&reloadedUnit, unit.ID).Error)
	assert.Equal(t, models.UnitStatusVacant, reloadedUnit.Status)

	// a second vacate finds no active tenancy
	_, err = service.Vacate(landlord, tenancy.ID)
	require.Error(t, err)

	// and the unit accepts a new tenant
	next, err := service.Assign(landlord, unit.ID, AssignInput{
		NewTenant: &TenantInput{FullName: "Grace Moraa", Phone: "+254744000444"},
	})
	require.NoError(t, err)
	assert.True(t, next.IsActive)
}

func TestVacateByAssignedCaretaker(t *testing.T) {
	db := newTestDB(t)
	service := NewTenancyService(db)

	landlord := createLandlord(t, db)
	caretaker := createCaretaker(t, db)
	apartment := createApartment(t, db, landlord, caretaker)
	unit := createUnit(t, db, apartment, "A1", 9000)
	tenancy := createTenancy(t, db, createTenant(t, db, "Hassan Abdi"), unit, time.Now().UTC().AddDate(0, -1, 0), nil, true)

	_, err := service.Vacate(caretaker, tenancy.ID)
	require.NoError(t, err)
}
