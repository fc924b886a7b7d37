package handlers

import (
	"nyumbani/internal/services"
	"nyumbani/pkg/pagination"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type CreateCaretakerRequest struct {
	Username        string  `json:"username" binding:"required,min=3,max=50"`
	Email           string  `json:"email" binding:"required,email"`
	Name            string  `json:"name" binding:"required"`
	Phone           *string `json:"phone"`
	Password        string  `json:"password" binding:"required,min=6"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
}

// CreateCaretaker lets a landlord provision a caretaker account
func (h *UserHandler) CreateCaretaker(c *gin.Context) {
	var req CreateCaretakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid caretaker payload")
		return
	}

	caretaker, err := h.service.CreateCaretaker(currentUser(c), services.CreateCaretakerInput{
		Username:        req.Username,
		Email:           req.Email,
		Name:            req.Name,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.HandleError(c, err, "failed to create caretaker")
		return
	}

	response.SuccessWithMessage(c, "caretaker created", caretaker)
}

// ListCaretakers returns caretaker accounts for assignment pickers
func (h *UserHandler) ListCaretakers(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	caretakers, total, err := h.service.ListCaretakers(params)
	if err != nil {
		response.ServerError(c, "failed to list caretakers")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, caretakers, pageInfo)
}
