package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"quotation-backend/models"
	"quotation-backend/storage"

	"github.com/gin-gonic/gin"
)

// Root godoc
// @Summary      Liveness
// @Tags         Health
// @Produce      plain
// @Success      200  {string}  string  "🚀 API is running..."
// @Router       / [get]
func Root(c *gin.Context) {
	c.String(http.StatusOK, "🚀 API is running...")
}

// HealthCheck godoc
// @Summary      Readiness
// @Description  Pings the database pool
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Failure      503  {object}  models.HealthResponse
// @Router       /healthz [get]
func HealthCheck(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := storage.Ping(c.Request.Context(), db); err != nil {
			log.Printf("health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
			return
		}
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
	}
}
