package handlers

import (
	"nyumbani/internal/services"
	"nyumbani/pkg/pagination"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApartmentHandler struct {
	service *services.ApartmentService
}

func NewApartmentHandler(service *services.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{service: service}
}

type ApartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Location    string `json:"location" binding:"required,max=255"`
	CaretakerID *uint  `json:"caretaker_id"`
}

type AssignCaretakerRequest struct {
	CaretakerID *uint `json:"caretaker_id"` // null clears the assignment
}

// Create adds an apartment for the authenticated landlord
func (h *ApartmentHandler) Create(c *gin.Context) {
	var req ApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and location are required")
		return
	}

	apartment, err := h.service.Create(currentUser(c), req.Name, req.Location, req.CaretakerID)
	if err != nil {
		response.HandleError(c, err, "failed to create apartment")
		return
	}

	response.SuccessWithMessage(c, "apartment created", apartment)
}

// Update edits an apartment owned by the caller
func (h *ApartmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid apartment id")
		return
	}

	var req ApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and location are required")
		return
	}

	apartment, err := h.service.Update(currentUser(c), id, req.Name, req.Location)
	if err != nil {
		response.HandleError(c, err, "failed to update apartment")
		return
	}

	response.Success(c, apartment)
}

// AssignCaretaker sets or clears the apartment's caretaker
func (h *ApartmentHandler) AssignCaretaker(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid apartment id")
		return
	}

	var req AssignCaretakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}

	apartment, err := h.service.AssignCaretaker(currentUser(c), id, req.CaretakerID)
	if err != nil {
		response.HandleError(c, err, "failed to assign caretaker")
		return
	}

	response.Success(c, apartment)
}

// GetByID returns one apartment with its units
func (h *ApartmentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid apartment id")
		return
	}

	apartment, err := h.service.GetByID(currentUser(c), id)
	if err != nil {
		response.HandleError(c, err, "failed to load apartment")
		return
	}

	response.Success(c, apartment)
}

// List returns the caller's apartments with unit counts
func (h *ApartmentHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	apartments, total, err := h.service.List(currentUser(c), params)
	if err != nil {
		response.ServerError(c, "failed to list apartments")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, apartments, pageInfo)
}
