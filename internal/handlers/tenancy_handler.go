package handlers

import (
	"time"

	"nyumbani/internal/services"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

type TenancyHandler struct {
	service *services.TenancyService
}

func NewTenancyHandler(service *services.TenancyService) *TenancyHandler {
	return &TenancyHandler{service: service}
}

// AssignRequest references an existing tenant or creates one inline
type AssignRequest struct {
	TenantID  *uint          `json:"tenant_id"`
	NewTenant *TenantRequest `json:"new_tenant"`
	StartDate *string        `json:"start_date"` // YYYY-MM-DD, defaults to today
}

// Assign places a tenant into a vacant unit
func (h *TenancyHandler) Assign(c *gin.Context) {
	unitID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid unit id")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid assignment payload")
		return
	}

	input := services.AssignInput{TenantID: req.TenantID}
	if req.NewTenant != nil {
		tenantInput := req.NewTenant.toInput()
		input.NewTenant = &tenantInput
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			response.BadRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		input.StartDate = &start
	}

	tenancy, err := h.service.Assign(currentUser(c), unitID, input)
	if err != nil {
		response.HandleError(c, err, "failed to assign tenant")
		return
	}

	response.SuccessWithMessage(c, "tenant assigned", tenancy)
}

// Vacate ends an active tenancy and frees the unit
func (h *TenancyHandler) Vacate(c *gin.Context) {
	tenancyID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tenancy id")
		return
	}

	tenancy, err := h.service.Vacate(currentUser(c), tenancyID)
	if err != nil {
		response.HandleError(c, err, "failed to vacate tenancy")
		return
	}

	response.SuccessWithMessage(c, "tenancy ended", tenancy)
}

// GetByID returns one tenancy
func (h *TenancyHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tenancy id")
		return
	}

	tenancy, err := h.service.GetByID(currentUser(c), id)
	if err != nil {
		response.HandleError(c, err, "failed to load tenancy")
		return
	}

	response.Success(c, tenancy)
}

// ListByUnit returns the tenancy history of a unit
func (h *TenancyHandler) ListByUnit(c *gin.Context) {
	unitID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid unit id")
		return
	}

	tenancies, err := h.service.ListByUnit(currentUser(c), unitID)
	if err != nil {
		response.HandleError(c, err, "failed to list tenancies")
		return
	}

	response.Success(c, tenancies)
}
