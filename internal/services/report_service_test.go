package services

import (
	"testing"
	"time"

	"nyumbani/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createRentRecord(t *testing.T, db *gorm.DB, tenancy *models.Tenancy, rent, paid int64) *models.RentRecord {
	t.Helper()
	year, month := currentPeriod()

	status := models.RentStatusUnpaid
	if paid > 0 && paid < rent {
		status = models.RentStatusPartial
	} else if paid >= rent {
		status = models.RentStatusPaid
	}

	record := &models.RentRecord{
		TenancyID:  tenancy.ID,
		Year:       year,
		Month:      month,
		RentAmount: d(rent),
		TotalPaid:  d(paid),
		Status:     status,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestSummarizeAggregates(t *testing.T) {
	db := newTestDB(t)
	service := NewReportService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unitA := createUnit(t, db, apartment, "A1", 10000)
	unitB := createUnit(t, db, apartment, "A2", 15000)
	createUnit(t, db, apartment, "A3", 6000) // stays vacant

	start := time.Now().UTC().AddDate(0, -1, 0)
	tenancyA := createTenancy(t, db, createTenant(t, db, "Alice Wanjiku"), unitA, start, nil, true)
	tenancyB := createTenancy(t, db, createTenant(t, db, "Brian Otieno"), unitB, start, nil, true)

	createRentRecord(t, db, tenancyA, 10000, 4000)
	createRentRecord(t, db, tenancyB, 15000, 0)

	year, month := currentPeriod()
	summary, err := service.Summarize(landlord, year, month, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.TotalApartments)
	assert.Equal(t, int64(3), summary.TotalUnits)
	assert.Equal(t, int64(2), summary.OccupiedUnits)
	assert.Equal(t, int64(1), summary.VacantUnits)

	requireDecimal(t, 25000, summary.ExpectedRent)
	requireDecimal(t, 4000, summary.CollectedRent)
	requireDecimal(t, 21000, summary.OutstandingBalance)
	assert.InDelta(t, 16.0, summary.CollectionRate, 0.001)

	require.Len(t, summary.UnpaidTenants, 2)
	byTenant := map[string]SummaryRow{}
	for _, row := range summary.UnpaidTenants {
		byTenant[row.TenantName] = row
	}
	requireDecimal(t, 6000, byTenant["Alice Wanjiku"].Balance)
	requireDecimal(t, 15000, byTenant["Brian Otieno"].Balance)
	assert.Equal(t, models.RentStatusPartial, byTenant["Alice Wanjiku"].Status)
	assert.Equal(t, "A2", byTenant["Brian Otieno"].UnitNumber)
}

// An empty scope must yield zeroed aggregates, not a division error
func TestSummarizeEmptyScope(t *testing.T) {
	db := newTestDB(t)
	service := NewReportService(db)

	landlord := createLandlord(t, db)

	year, month := currentPeriod()
	summary, err := service.Summarize(landlord, year, month, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.TotalApartments)
	assert.Equal(t, int64(0), summary.TotalUnits)
	requireDecimal(t, 0, summary.ExpectedRent)
	requireDecimal(t, 0, summary.CollectedRent)
	requireDecimal(t, 0, summary.OutstandingBalance)
	assert.Equal(t, 0.0, summary.CollectionRate)
	assert.Empty(t, summary.UnpaidTenants)
}

func TestSummarizeFullyCollected(t *testing.T) {
	db := newTestDB(t)
	service := NewReportService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	unit := createUnit(t, db, apartment, "B1", 12000)
	tenancy := createTenancy(t, db, createTenant(t, db, "Carol Njeri"), unit, time.Now().UTC().AddDate(0, -1, 0), nil, true)
	createRentRecord(t, db, tenancy, 12000, 12000)

	year, month := currentPeriod()
	summary, err := service.Summarize(landlord, year, month, nil)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, summary.CollectionRate, 0.001)
	assert.Empty(t, summary.UnpaidTenants)
}

// Caretakers only see apartments assigned to them; landlords only their own
func TestSummarizeScoping(t *testing.T) {
	db := newTestDB(t)
	service := NewReportService(db)

	landlord := createLandlord(t, db)
	caretaker := createCaretaker(t, db)
	managed := createApartment(t, db, landlord, caretaker)
	unmanaged := createApartment(t, db, landlord, nil)

	start := time.Now().UTC().AddDate(0, -1, 0)
	unitA := createUnit(t, db, managed, "A1", 10000)
	tenancyA := createTenancy(t, db, createTenant(t, db, "David Kamau"), unitA, start, nil, true)
	createRentRecord(t, db, tenancyA, 10000, 0)

	unitB := createUnit(t, db, unmanaged, "B1", 20000)
	tenancyB := createTenancy(t, db, createTenant(t, db, "Esther Achieng"), unitB, start, nil, true)
	createRentRecord(t, db, tenancyB, 20000, 0)

	year, month := currentPeriod()

	caretakerSummary, err := service.Summarize(caretaker, year, month, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), caretakerSummary.TotalApartments)
	requireDecimal(t, 10000, caretakerSummary.ExpectedRent)

	landlordSummary, err := service.Summarize(landlord, year, month, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), landlordSummary.TotalApartments)
	requireDecimal(t, 30000, landlordSummary.ExpectedRent)

	// narrowing to one apartment the caller may access
	scoped, err := service.Summarize(landlord, year, month, &managed.ID)
	require.NoError(t, err)
	requireDecimal(t, 10000, scoped.ExpectedRent)

	// caretaker cannot narrow to an apartment they do not manage
	_, err = service.Summarize(caretaker, year, month, &unmanaged.ID)
	require.Error(t, err)
}

func TestRowsIncludeAllStatuses(t *testing.T) {
	db := newTestDB(t)
	service := NewReportService(db)

	landlord := createLandlord(t, db)
	apartment := createApartment(t, db, landlord, nil)
	start := time.Now().UTC().AddDate(0, -1, 0)

	unitA := createUnit(t, db, apartment, "A1", 10000)
	tenancyA := createTenancy(t, db, createTenant(t, db, "Frank Mwangi"), unitA, start, nil, true)
	createRentRecord(t, db, tenancyA, 10000, 10000)

	unitB := createUnit(t, db, apartment, "A2", 8000)
	tenancyB := createTenancy(t, db, createTenant(t, db, "Grace Moraa"), unitB, start, nil, true)
	createRentRecord(t, db, tenancyB, 8000, 3000)

	year, month := currentPeriod()
	rows, err := service.Rows(landlord, year, month, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	statuses := map[string]string{}
	for _, row := range rows {
		statuses[row.TenantName] = row.Status
	}
	assert.Equal(t, models.RentStatusPaid, statuses["Frank Mwangi"])
	assert.Equal(t, models.RentStatusPartial, statuses["Grace Moraa"])
}

func TestSummarizeRejectsInvalidMonth(t *testing.T) {
	db := newTestDB(t)
	service := NewReportService(db)
	landlord := createLandlord(t, db)

	_, err := service.Summarize(landlord, 2024, 0, nil)
	assert.Error(t, err)
	_, err = service.Summarize(landlord, 2024, 13, nil)
	assert.Error(t, err)
}
