package handlers

import (
	"nyumbani/internal/services"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type UnitHandler struct {
	service *services.UnitService
}

func NewUnitHandler(service *services.UnitService) *UnitHandler {
	return &UnitHandler{service: service}
}

type UnitRequest struct {
	UnitNumber string          `json:"unit_number" binding:"required,max=20"`
	Rent       decimal.Decimal `json:"rent" binding:"required"`
}

// Create adds a unit to the apartment in the path
func (h *UnitHandler) Create(c *gin.Context) {
	apartmentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid apartment id")
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "unit_number and rent are required")
		return
	}

	unit, err := h.service.Create(currentUser(c), apartmentID, req.UnitNumber, req.Rent)
	if err != nil {
		response.HandleError(c, err, "failed to create unit")
		return
	}

	response.SuccessWithMessage(c, "unit created", unit)
}

// Update edits unit number and rent
func (h *UnitHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid unit id")
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "unit_number and rent are required")
		return
	}

	unit, err := h.service.Update(currentUser(c), id, req.UnitNumber, req.Rent)
	if err != nil {
		response.HandleError(c, err, "failed to update unit")
		return
	}

	response.Success(c, unit)
}

// GetByID returns one unit
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid unit id")
		return
	}

	unit, err := h.service.GetByID(currentUser(c), id)
	if err != nil {
		response.HandleError(c, err, "failed to load unit")
		return
	}

	response.Success(c, unit)
}

// ListByApartment returns the units of one apartment with tenancy history
func (h *UnitHandler) ListByApartment(c *gin.Context) {
	apartmentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid apartment id")
		return
	}

	units, err := h.service.ListByApartment(currentUser(c), apartmentID)
	if err != nil {
		response.HandleError(c, err, "failed to list units")
		return
	}

	response.Success(c, units)
}
