package handlers

import (
	"nyumbani/internal/services"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

type RentRecordHandler struct {
	service *services.RentRecordService
}

func NewRentRecordHandler(service *services.RentRecordService) *RentRecordHandler {
	return &RentRecordHandler{service: service}
}

type EnsureRentRecordsRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// Ensure materializes the month's rent records for the landlord's tenancies.
// Safe to call repeatedly; future months create nothing.
func (h *RentRecordHandler) Ensure(c *gin.Context) {
	var req EnsureRentRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "year and month are required")
		return
	}

	created, err := h.service.EnsureRentRecords(currentUser(c).ID, req.Year, req.Month)
	if err != nil {
		response.HandleError(c, err, "reconciliation failed")
		return
	}

	response.Success(c, gin.H{"created": created})
}

// GetByID returns one rent record with its payments
func (h *RentRecordHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid rent record id")
		return
	}

	record, err := h.service.GetByID(currentUser(c), id)
	if err != nil {
		response.HandleError(c, err, "failed to load rent record")
		return
	}

	response.Success(c, record)
}

// ListByTenancy returns a tenancy's rent records, newest period first
func (h *RentRecordHandler) ListByTenancy(c *gin.Context) {
	tenancyID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tenancy id")
		return
	}

	records, err := h.service.ListByTenancy(currentUser(c), tenancyID)
	if err != nil {
		response.HandleError(c, err, "failed to list rent records")
		return
	}

	response.Success(c, records)
}
