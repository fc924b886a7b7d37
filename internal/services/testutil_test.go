package services

import (
	"fmt"
	"testing"
	"time"

	"nyumbani/internal/database"
	"nyumbani/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Pool size is pinned to one connection: each new :memory: connection would
// otherwise be a separate empty database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateDB(db))
	return db
}

func d(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

// requireDecimal fails when got != want, printing both at fixed precision
func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(d(want)), "expected %d, got %s", want, got.StringFixed(2))
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Name:     fmt.Sprintf("User %d", userSeq),
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createLandlord(t *testing.T, db *gorm.DB) *models.User {
	return createUser(t, db, models.RoleLandlord)
}

func createCaretaker(t *testing.T, db *gorm.DB) *models.User {
	return createUser(t, db, models.RoleCaretaker)
}

func createApartment(t *testing.T, db *gorm.DB, landlord *models.User, caretaker *models.User) *models.Apartment {
	t.Helper()
	apartment := &models.Apartment{
		LandlordID: landlord.ID,
		Name:       fmt.Sprintf("Apartment %d", landlord.ID),
		Location:   "Nairobi",
	}
	if caretaker != nil {
		apartment.CaretakerID = &caretaker.ID
	}
	require.NoError(t, db.Create(apartment).Error)
	return apartment
}

func createUnit(t *testing.T, db *gorm.DB, apartment *models.Apartment, number string, rent int64) *models.Unit {
	t.Helper()
	unit := &models.Unit{
		ApartmentID: apartment.ID,
		UnitNumber:  number,
		Rent:        d(rent),
		Status:      models.UnitStatusVacant,
	}
	require.NoError(t, db.Create(unit).Error)
	return unit
}

func createTenant(t *testing.T, db *gorm.DB, name string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		FullName: name,
		Phone:    "+254700000000",
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// createTenancy inserts a tenancy directly and flips the unit status when
// active, bypassing the assignment flow for fixture setup
func createTenancy(t *testing.T, db *gorm.DB, tenant *models.Tenant, unit *models.Unit, start time.Time, end *time.Time, active bool) *models.Tenancy {
	t.Helper()
	tenancy := &models.Tenancy{
		TenantID:  tenant.ID,
		UnitID:    unit.ID,
		StartDate: datatypes.Date(start),
		IsActive:  active,
	}
	if end != nil {
		endDate := datatypes.Date(*end)
		tenancy.EndDate = &endDate
	}
	require.NoError(t, db.Create(tenancy).Error)
	if active {
		require.NoError(t, db.Model(unit).Update("status", models.UnitStatusOccupied).Error)
	}
	return tenancy
}

// currentPeriod returns today's (year, month)
func currentPeriod() (int, int) {
	now := time.Now()
	return now.Year(), int(now.Month())
}

// previousPeriod returns the (year, month) before the current one
func previousPeriod() (int, int) {
	year, month := currentPeriod()
	month--
	if month == 0 {
		month = 12
		year--
	}
	return year, month
}

// nextPeriod returns the (year, month) after the current one
func nextPeriod() (int, int) {
	year, month := currentPeriod()
	month++
	if month == 13 {
		month = 1
		year++
	}
	return year, month
}
