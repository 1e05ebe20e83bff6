package handlers

import (
	"log"
	"net/http"

	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportQuotations godoc
// @Summary      Export quotations to Excel
// @Description  Downloads all quotations as quotations.xlsx
// @Tags         Quotations
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      500  {object}  models.MessageResponse
// @Router       /api/quotations/export [get]
func ExportQuotations(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotations, err := svc.List(c.Request.Context())
		if err != nil {
			log.Printf("Error fetching quotations for export: %v", err)
			utils.MessageResponse(c, http.StatusInternalServerError, "Failed to fetch quotations")
			return
		}

		buf, err := services.BuildQuotationsWorkbook(quotations)
		if err != nil {
			log.Printf("Error building workbook: %v", err)
			utils.MessageResponse(c, http.StatusInternalServerError, "Failed to generate Excel file")
			return
		}

		c.Header("Content-Disposition", "attachment; filename=quotations.xlsx")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
