package handlers

import (
	"net/http"

	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminIDKey is the gin context key holding the authenticated admin id.
const AdminIDKey = "admin_id"

// AdminAuth rejects requests without a valid admin session token.
func AdminAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
			return
		}

		adminID, err := auth.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Next()
	}
}
