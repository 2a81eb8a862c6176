package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/response"
	"github.com/sangkips/discount-label-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware for operator
// tokens
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// Set operator info in context
		c.Set("operator_id", claims.OperatorID)
		c.Set("username", claims.Username)
		c.Set("outlet", claims.Outlet)
		c.Set("user_roles", claims.Roles)

		// Repositories scope the scan history by the operator in the
		// request context
		ctx := domainRepo.WithOperator(c.Request.Context(), claims.OperatorID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
