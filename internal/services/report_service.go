package services

import (
	"nyumbani/internal/models"
	"nyumbani/pkg/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// SummaryRow is one rent record joined with its display fields. The
// presentation layer renders these as-is; the core exposes data, not markup.
type SummaryRow struct {
	RentRecordID uint            `json:"rent_record_id"`
	TenancyID    uint            `json:"tenancy_id"`
	TenantName   string          `json:"tenant_name"`
	Apartment    string          `json:"apartment"`
	UnitNumber   string          `json:"unit_number"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Balance      decimal.Decimal `json:"balance"`
	Status       string          `json:"status"`
}

// MonthlySummary aggregates obligations and collections over the caller's
// scope for one month
type MonthlySummary struct {
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	TotalApartments    int64           `json:"total_apartments"`
	TotalUnits         int64           `json:"total_units"`
	OccupiedUnits      int64           `json:"occupied_units"`
	VacantUnits        int64           `json:"vacant_units"`
	ExpectedRent       decimal.Decimal `json:"expected_rent"`
	CollectedRent      decimal.Decimal `json:"collected_rent"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	CollectionRate     float64         `json:"collection_rate"`
	UnpaidTenants      []SummaryRow    `json:"unpaid_tenants"`
}

// Summarize computes the monthly aggregate for the caller's scope: landlords
// over apartments they own, caretakers over apartments assigned to them,
// optionally narrowed to one apartment. Read-only; an empty scope yields
// zeroed aggregates.
func (s *ReportService) Summarize(user *models.User, year, month int, apartmentID *uint) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, errors.NewValidation("month must be between 1 and 12")
	}
	if apartmentID != nil {
		if _, err := findApartmentFor(s.db, user, *apartmentID); err != nil {
			return nil, err
		}
	}

	summary := &MonthlySummary{
		Year:          year,
		Month:         month,
		UnpaidTenants: []SummaryRow{},
	}

	// occupancy counts over the scoped apartments
	apartmentQuery := scopeApartments(s.db.Model(&models.Apartment{}), user)
	if apartmentID != nil {
		apartmentQuery = apartmentQuery.Where("apartments.id = ?", *apartmentID)
	}
	if err := apartmentQuery.Count(&summary.TotalApartments).Error; err != nil {
		return nil, err
	}

	unitQuery := func() *gorm.DB {
		q := scopeApartments(
			s.db.Model(&models.Unit{}).
				Joins("JOIN apartments ON apartments.id = units.apartment_id"),
			user,
		)
		if apartmentID != nil {
			q = q.Where("apartments.id = ?", *apartmentID)
		}
		return q
	}
	if err := unitQuery().Count(&summary.TotalUnits).Error; err != nil {
		return nil, err
	}
	if err := unitQuery().
		Where("units.status = ?", models.UnitStatusOccupied).
		Count(&summary.OccupiedUnits).Error; err != nil {
		return nil, err
	}
	summary.VacantUnits = summary.TotalUnits - summary.OccupiedUnits

	// rent aggregates over the scoped records
	var agg struct {
		Expected  decimal.Decimal
		Collected decimal.Decimal
	}
	err := s.recordQuery(user, year, month, apartmentID).
		Select("COALESCE(SUM(rent_records.rent_amount), 0) AS expected, COALESCE(SUM(rent_records.total_paid), 0) AS collected").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	summary.ExpectedRent = agg.Expected
	summary.CollectedRent = agg.Collected
	summary.OutstandingBalance = agg.Expected.Sub(agg.Collected)

	if agg.Expected.IsPositive() {
		rate, _ := agg.Collected.
			Div(agg.Expected).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			Float64()
		summary.CollectionRate = rate
	}

	unpaid, err := s.scanRows(
		s.recordQuery(user, year, month, apartmentID).
			Where("rent_records.total_paid < rent_records.rent_amount"),
	)
	if err != nil {
		return nil, err
	}
	summary.UnpaidTenants = unpaid

	return summary, nil
}

// Rows returns every rent record in scope for the month as display rows;
// the CSV export serializes these verbatim
func (s *ReportService) Rows(user *models.User, year, month int, apartmentID *uint) ([]SummaryRow, error) {
	if month < 1 || month > 12 {
		return nil, errors.NewValidation("month must be between 1 and 12")
	}
	if apartmentID != nil {
		if _, err := findApartmentFor(s.db, user, *apartmentID); err != nil {
			return nil, err
		}
	}
	return s.scanRows(s.recordQuery(user, year, month, apartmentID))
}

func (s *ReportService) recordQuery(user *models.User, year, month int, apartmentID *uint) *gorm.DB {
	query := s.db.Model(&models.RentRecord{}).
		Joins("JOIN tenancies ON tenancies.id = rent_records.tenancy_id").
		Joins("JOIN tenants ON tenants.id = tenancies.tenant_id").
		Joins("JOIN units ON units.id = tenancies.unit_id").
		Joins("JOIN apartments ON apartments.id = units.apartment_id").
		Where("rent_records.year = ? AND rent_records.month = ?", year, month)
	query = scopeApartments(query, user)
	if apartmentID != nil {
		query = query.Where("apartments.id = ?", *apartmentID)
	}
	return query
}

func (s *ReportService) scanRows(query *gorm.DB) ([]SummaryRow, error) {
	rows := []SummaryRow{}
	err := query.
		Select(`rent_records.id AS rent_record_id,
			tenancies.id AS tenancy_id,
			tenants.full_name AS tenant_name,
			apartments.name AS apartment,
			units.unit_number AS unit_number,
			rent_records.rent_amount AS rent_amount,
			rent_records.total_paid AS total_paid,
			rent_records.status AS status`).
		Order("apartments.name, units.unit_number").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Balance = rows[i].RentAmount.Sub(rows[i].TotalPaid)
	}
	return rows, nil
}
