package services

import (
	"testing"
	"time"

	"nyumbani/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureRentRecordsCreatesOnePerTenancy(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unitA := createUnit(t, db, apartment, "A1", 10000)
	unitB := createUnit(t, db, apartment, "A2", 15000)

	start := time.Now().UTC().AddDate(0, -2, 0)
	createTenancy(t, db, createTenant(t, db, "Alice Wanjiku"), unitA, start, nil, true)
	createTenancy(t, db, createTenant(t, db, "Brian Otieno"), unitB, start, nil, true)

	year, month := currentPeriod()
	created, err := service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	var records []models.RentRecord
	require.NoError(t, db.Where("year = ? AND month = ?", year, month).Find(&records).Error)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, models.RentStatusUnpaid, record.Status)
		requireDecimal(t, 0, record.TotalPaid)
	}

	// snapshot of the unit rent at creation time
	var recordA models.RentRecord
	require.NoError(t, db.Where("tenancy_id IN (SELECT id FROM tenancies WHERE unit_id = ?)", unitA.ID).
		First(&recordA).Error)
	requireDecimal(t, 10000, recordA.RentAmount)
}

func TestEnsureRentRecordsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "B1", 8000)
	createTenancy(t, db, createTenant(t, db, "Carol Njeri"), unit, time.Now().UTC().AddDate(0, -1, 0), nil, true)

	year, month := currentPeriod()
	created, err := service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var count int64
	require.NoError(t, db.Model(&models.RentRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureRentRecordsFutureMonthIsNoop(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "C1", 12000)
	createTenancy(t, db, createTenant(t, db, "David Kamau"), unit, time.Now().UTC().AddDate(0, -1, 0), nil, true)

	year, month := nextPeriod()
	created, err := service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var count int64
	require.NoError(t, db.Model(&models.RentRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestEnsureRentRecordsRejectsInvalidMonth(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)
	landlord := createLandlord(t, db)

	_, err := service.EnsureRentRecords(landlord.ID, 2024, 13)
	assert.Error(t, err)
	_, err = service.EnsureRentRecords(landlord.ID, 2024, 0)
	assert.Error(t, err)
}

// A tenancy that only partially covers the month still owes rent for it:
// boundaries are inclusive on both ends.
func TestEnsureRentRecordsIncludesPartialMonthOverlap(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	year, month := currentPeriod()

	// started mid-month, still active
	midMonth := time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
	unitA := createUnit(t, db, apartment, "D1", 9000)
	createTenancy(t, db, createTenant(t, db, "Esther Achieng"), unitA, midMonth, nil, true)

	created, err := service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

// An ended tenancy whose dates overlap a past month is still materialized
// for that month, independent of is_active. Retroactive reporting depends
// on this.
func TestEnsureRentRecordsIncludesEndedTenancy(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "E1", 11000)

	prevYear, prevMonth := previousPeriod()
	start := time.Date(prevYear, time.Month(prevMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)
	end := time.Date(prevYear, time.Month(prevMonth), 10, 0, 0, 0, 0, time.UTC)
	createTenancy(t, db, createTenant(t, db, "Frank Mwangi"), unit, start, &end, false)

	created, err := service.EnsureRentRecords(landlord.ID, prevYear, prevMonth)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// but not for the current month, which it no longer overlaps
	year, month := currentPeriod()
	created, err = service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestEnsureRentRecordsScopedToLandlord(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)

	landlordA := createLandlord(t, db)
	landlordB := createLandlord(t, db)
	apartmentB := createApartment(t, db, landlordB, nil)
	unit := createUnit(t, db, apartmentB, "F1", 7000)
	createTenancy(t, db, createTenant(t, db, "Grace Moraa"), unit, time.Now().UTC().AddDate(0, -1, 0), nil, true)

	year, month := currentPeriod()
	created, err := service.EnsureRentRecords(landlordA.ID, year, month)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestEnsureRentRecordsKeepsSnapshotAfterRentChange(t *testing.T) {
	db := newTestDB(t)
	service := NewRentRecordService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "G1", 10000)
	createTenancy(t, db, createTenant(t, db, "Hassan Abdi"), unit, time.Now().UTC().AddDate(0, -1, 0), nil, true)

	year, month := currentPeriod()
	_, err := service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)

	// raise the rent after materialization
	require.NoError(t, db.Model(unit).Update("rent", d(13000)).Error)

	_, err = service.EnsureRentRecords(landlord.ID, year, month)
	require.NoError(t, err)

	var record models.RentRecord
	require.NoError(t, db.First(&record).Error)
	requireDecimal(t, 10000, record.RentAmount)
}
