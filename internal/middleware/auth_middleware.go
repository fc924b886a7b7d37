package middleware

import (
	"strings"

	"nyumbani/internal/models"
	"nyumbani/internal/services"
	"nyumbani/pkg/jwt"
	"nyumbani/pkg/logger"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards routes with JWT auth and role checks
type AuthMiddleware struct {
	userService *services.UserService
	blacklist   *services.TokenBlacklist
	jwtManager  *jwt.Manager
}

func NewAuthMiddleware(userService *services.UserService, blacklist *services.TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		blacklist:   blacklist,
		jwtManager:  jwt.GetManager(),
	}
}

// RequireLogin validates the bearer token and stores the user on the context
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}
		tokenString := authHeader[7:]

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}

		if m.blacklist != nil {
			revoked, err := m.blacklist.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				// redis being down must not lock everyone out
				logger.GetLogger().Warnf("Token blacklist check failed: %v", err)
			} else if revoked {
				response.Unauthorized(c, "token has been revoked")
				c.Abort()
				return
			}
		}

		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "user not found")
			c.Abort()
			return
		}
		if !m.userService.IsActive(user) {
			response.Unauthorized(c, "account is disabled")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireLandlord gates landlord-only routes; must run after RequireLogin
func (m *AuthMiddleware) RequireLandlord() gin.HandlerFunc {
	return m.requireRole(models.RoleLandlord, "landlord role required")
}

// RequireCaretaker gates caretaker-only routes; must run after RequireLogin
func (m *AuthMiddleware) RequireCaretaker() gin.HandlerFunc {
	return m.requireRole(models.RoleCaretaker, "caretaker role required")
}

func (m *AuthMiddleware) requireRole(role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}

		user := value.(*models.User)
		if user.Role != role {
			response.Forbidden(c, message)
			c.Abort()
			return
		}

		c.Next()
	}
}
