package handlers

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"nyumbani/internal/services"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service     *services.ReportService
	rentService *services.RentRecordService
}

func NewReportHandler(service *services.ReportService, rentService *services.RentRecordService) *ReportHandler {
	return &ReportHandler{service: service, rentService: rentService}
}

// parses ?year=&month=&apartment_id=; year/month default to the current month
func parseReportParams(c *gin.Context) (int, int, *uint, error) {
	now := time.Now()

	year := now.Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("invalid year")
		}
		year = parsed
	}

	month := int(now.Month())
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("invalid month")
		}
		month = parsed
	}

	var apartmentID *uint
	if v := c.Query("apartment_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("invalid apartment_id")
		}
		id := uint(parsed)
		apartmentID = &id
	}

	return year, month, apartmentID, nil
}

// Summary returns the monthly aggregate for the caller's scope. Landlords
// get the month reconciled first, the way the original dashboard did.
func (h *ReportHandler) Summary(c *gin.Context) {
	year, month, apartmentID, err := parseReportParams(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := currentUser(c)
	if user.IsLandlord() {
		if _, err := h.rentService.EnsureRentRecords(user.ID, year, month); err != nil {
			response.HandleError(c, err, "reconciliation failed")
			return
		}
	}

	summary, err := h.service.Summarize(user, year, month, apartmentID)
	if err != nil {
		response.HandleError(c, err, "failed to build summary")
		return
	}

	response.Success(c, summary)
}

// ExportCSV streams the month's rent records as a CSV attachment. Pure
// serialization of the same rows the summary exposes.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	year, month, apartmentID, err := parseReportParams(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rows, err := h.service.Rows(currentUser(c), year, month, apartmentID)
	if err != nil {
		response.HandleError(c, err, "failed to build export")
		return
	}

	filename := fmt.Sprintf("rent-summary-%d-%02d.csv", year, month)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write([]string{"tenant_name", "apartment", "unit_number", "rent_amount", "total_paid", "balance", "status"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.TenantName,
			row.Apartment,
			row.UnitNumber,
			row.RentAmount.StringFixed(2),
			row.TotalPaid.StringFixed(2),
			row.Balance.StringFixed(2),
			row.Status,
		})
	}
	writer.Flush()
}
