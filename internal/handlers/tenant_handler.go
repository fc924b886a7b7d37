package handlers

import (
	"nyumbani/internal/services"
	"nyumbani/pkg/pagination"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	service *services.TenantService
}

func NewTenantHandler(service *services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

type TenantRequest struct {
	FullName   string  `json:"full_name" binding:"required,max=100"`
	Phone      string  `json:"phone" binding:"required,max=20"`
	Email      *string `json:"email" binding:"omitempty,email"`
	NationalID *string `json:"national_id" binding:"omitempty,max=50"`
}

func (r *TenantRequest) toInput() services.TenantInput {
	return services.TenantInput{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Email:      r.Email,
		NationalID: r.NationalID,
	}
}

// Create registers a tenant
func (h *TenantHandler) Create(c *gin.Context) {
	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "full_name and phone are required")
		return
	}

	tenant, err := h.service.Create(req.toInput())
	if err != nil {
		response.HandleError(c, err, "failed to create tenant")
		return
	}

	response.SuccessWithMessage(c, "tenant created", tenant)
}

// Update edits a tenant's contact details
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tenant id")
		return
	}

	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "full_name and phone are required")
		return
	}

	tenant, err := h.service.Update(id, req.toInput())
	if err != nil {
		response.HandleError(c, err, "failed to update tenant")
		return
	}

	response.Success(c, tenant)
}

// GetByID returns one tenant
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tenant id")
		return
	}

	tenant, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err, "failed to load tenant")
		return
	}

	response.Success(c, tenant)
}

// List returns tenants, filterable by ?search=
func (h *TenantHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	search := c.Query("search")

	tenants, total, err := h.service.List(search, params)
	if err != nil {
		response.ServerError(c, "failed to list tenants")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, tenants, pageInfo)
}
