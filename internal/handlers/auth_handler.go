package handlers

import (
	"strings"
	"time"

	"nyumbani/internal/services"
	"nyumbani/pkg/jwt"
	"nyumbani/pkg/logger"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
	blacklist   *services.TokenBlacklist
	jwtManager  *jwt.Manager
}

func NewAuthHandler(userService *services.UserService, blacklist *services.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		blacklist:   blacklist,
		jwtManager:  jwt.GetManager(),
	}
}

// LoginRequest accepts username or email in the login field
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username        string  `json:"username" binding:"required,min=3,max=50"`
	Email           string  `json:"email" binding:"required,email"`
	Name            string  `json:"name" binding:"required"`
	Phone           *string `json:"phone"`
	Password        string  `json:"password" binding:"required,min=6"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
}

// Login authenticates and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "login and password are required")
		return
	}

	user, err := h.userService.Authenticate(req.Login, req.Password)
	if err != nil {
		response.HandleError(c, err, "login failed")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		response.ServerError(c, "failed to issue token")
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// Register creates a landlord account (self-service)
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid registration payload")
		return
	}

	user, err := h.userService.RegisterLandlord(services.RegisterLandlordInput{
		Username:        req.Username,
		Email:           req.Email,
		Name:            req.Name,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.HandleError(c, err, "registration failed")
		return
	}

	response.SuccessWithMessage(c, "account created", user)
}

// Logout blacklists the presented token for the rest of its lifetime
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "missing token")
		return
	}
	tokenString := authHeader[7:]

	claims, err := h.jwtManager.VerifyToken(tokenString)
	if err != nil {
		// nothing to revoke for an invalid token
		response.Success(c, nil)
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.blacklist.Revoke(c.Request.Context(), tokenString, ttl); err != nil {
		logger.GetLogger().Warnf("Failed to blacklist token: %v", err)
		response.ServerError(c, "logout failed")
		return
	}

	response.SuccessWithMessage(c, "logged out", nil)
}

// RefreshToken re-issues a token before it expires
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "missing token")
		return
	}

	token, err := h.jwtManager.RefreshToken(authHeader[7:])
	if err != nil {
		response.Unauthorized(c, "token invalid or expired")
		return
	}

	response.Success(c, gin.H{"token": token})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, currentUser(c))
}
