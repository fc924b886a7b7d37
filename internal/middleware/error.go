package middleware

import (
	"nyumbani/pkg/logger"
	"nyumbani/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics into a clean 500 response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				appLogger := logger.GetLogger()
				appLogger.Errorf("Panic recovered: %v", err)
				response.ServerError(c, "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
