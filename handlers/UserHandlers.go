package handlers

import (
	"log"
	"net/http"

	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers godoc
// @Summary      List admin users
// @Description  Returns the rows of the admin table as stored
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.AdminUser
// @Failure      500  {object}  models.ErrorResponse
// @Router       /users [get]
func GetAdminUsers(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		admins, err := auth.ListAdmins(c.Request.Context())
		if err != nil {
			log.Printf("Error fetching admin users: %v", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch users", err)
			return
		}
		c.JSON(http.StatusOK, admins)
	}
}
