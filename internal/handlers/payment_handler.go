package handlers

import (
	"nyumbani/internal/services"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=CASH MPESA BANK"`
	Reference string          `json:"reference" binding:"omitempty,max=100"`
}

// Create records a payment against the rent record in the path
func (h *PaymentHandler) Create(c *gin.Context) {
	rentRecordID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid rent record id")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErr {
				if fieldErr.Field() == "Method" {
					response.BadRequest(c, "method must be CASH, MPESA or BANK")
					return
				}
			}
		}
		response.BadRequest(c, "amount and method are required")
		return
	}

	payment, err := h.service.RecordPayment(currentUser(c), rentRecordID, req.Amount, req.Method, req.Reference)
	if err != nil {
		response.HandleError(c, err, "failed to record payment")
		return
	}

	response.SuccessWithMessage(c, "payment recorded", payment)
}

// Delete removes a payment and triggers the record recompute
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid payment id")
		return
	}

	if err := h.service.DeletePayment(currentUser(c), paymentID); err != nil {
		response.HandleError(c, err, "failed to delete payment")
		return
	}

	response.SuccessWithMessage(c, "payment deleted", nil)
}

// ListByRecord returns the payments of one rent record
func (h *PaymentHandler) ListByRecord(c *gin.Context) {
	rentRecordID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid rent record id")
		return
	}

	payments, err := h.service.ListByRecord(currentUser(c), rentRecordID)
	if err != nil {
		response.HandleError(c, err, "failed to list payments")
		return
	}

	response.Success(c, payments)
}
