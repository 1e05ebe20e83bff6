package handlers

import (
	"errors"
	"log"
	"net/http"

	"quotation-backend/models"
	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gin-gonic/gin"
)

// LoginHandler handles admin authentication
// @Summary Admin login
// @Description Check admin credentials and return a signed session token valid for 24 hours
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.MessageResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /api/login [post]
func LoginHandler(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.MessageResponse(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		token, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidCredentials):
				utils.MessageResponse(c, http.StatusUnauthorized, "Invalid username or password")
			case errors.Is(err, models.ErrDatabase):
				log.Printf("login failed for %q: %v", req.Username, err)
				utils.MessageResponse(c, http.StatusInternalServerError, "DB error")
			default:
				log.Printf("login failed for %q: %v", req.Username, err)
				utils.MessageResponse(c, http.StatusInternalServerError, "Failed to issue token")
			}
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			Message: "Login successful",
			Token:   token,
		})
	}
}
