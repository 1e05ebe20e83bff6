package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"quotation-backend/models"
	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	msgSubmitted         = "✅ Email sent & quotation saved!"
	msgSubmittedNotSaved = "✅ Email sent!"
	msgMissingFields     = "Missing name, email, phone, or PDF file."
	msgOnlyPDF           = "Only PDF files allowed!"
	msgFileTooLarge      = "PDF file is too large."
	msgSendFailed        = "Failed to send email"
)

// SendQuotationEmail godoc
// @Summary      Submit a quotation request
// @Description  Saves the quotation and emails the attached PDF to the company inbox and to the client
// @Tags         Quotations
// @Accept       multipart/form-data
// @Produce      json
// @Param        name          formData  string  true   "Client name"
// @Param        email         formData  string  true   "Client email"
// @Param        phone         formData  string  true   "Client phone"
// @Param        message       formData  string  false  "Free-text message"
// @Param        tableDetails  formData  string  false  "JSON array of requirement sections"
// @Param        grandTotal    formData  string  false  "Grand total"
// @Param        pdf           formData  file    true   "Project summary PDF"
// @Success      200  {object}  models.SubmitResponse
// @Failure      400  {object}  models.MessageResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /send-email [post]
func SendQuotationEmail(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := models.Submission{
			Name:         c.PostForm("name"),
			Email:        c.PostForm("email"),
			Phone:        c.PostForm("phone"),
			Message:      c.PostForm("message"),
			TableDetails: c.PostForm("tableDetails"),
			GrandTotal:   c.PostForm("grandTotal"),
		}

		// A missing file is reported together with missing fields
		fh, _ := c.FormFile("pdf")

		outcome, err := svc.Submit(c.Request.Context(), sub, fh)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrMissingFields):
				utils.MessageResponse(c, http.StatusBadRequest, msgMissingFields)
			case errors.Is(err, models.ErrNotPDF):
				utils.MessageResponse(c, http.StatusBadRequest, msgOnlyPDF)
			case errors.Is(err, models.ErrFileTooLarge):
				utils.MessageResponse(c, http.StatusBadRequest, msgFileTooLarge)
			default:
				log.Printf("quotation submission failed: %v", err)
				utils.ErrorResponse(c, http.StatusInternalServerError, msgSendFailed, err)
			}
			return
		}

		if !outcome.Persisted {
			c.JSON(http.StatusOK, models.SubmitResponse{
				Message: msgSubmittedNotSaved,
				Warning: "The emails were sent but the quotation could not be saved.",
			})
			return
		}

		c.JSON(http.StatusOK, models.SubmitResponse{
			Message:     msgSubmitted,
			QuotationID: outcome.QuotationID,
		})
	}
}

// GetQuotations godoc
// @Summary      List quotations
// @Description  Returns every stored quotation, newest first
// @Tags         Quotations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Quotation
// @Failure      500  {object}  models.MessageResponse
// @Router       /api/quotations [get]
func GetQuotations(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotations, err := svc.List(c.Request.Context())
		if err != nil {
			log.Printf("Error fetching quotations: %v", err)
			utils.MessageResponse(c, http.StatusInternalServerError, "Failed to fetch quotations")
			return
		}
		c.JSON(http.StatusOK, quotations)
	}
}

// DownloadQuotationPDF godoc
// @Summary      Download a quotation summary
// @Description  Renders a PDF summary of one stored quotation with a QR code
// @Tags         Quotations
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      int  true  "Quotation ID"
// @Success      200  {file}    file
// @Failure      400  {object}  models.MessageResponse
// @Failure      404  {object}  models.MessageResponse
// @Failure      500  {object}  models.MessageResponse
// @Router       /api/quotations/{id}/pdf [get]
func DownloadQuotationPDF(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			utils.MessageResponse(c, http.StatusBadRequest, "Invalid quotation id")
			return
		}

		quotation, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				utils.MessageResponse(c, http.StatusNotFound, "Quotation not found")
				return
			}
			log.Printf("Error fetching quotation %d: %v", id, err)
			utils.MessageResponse(c, http.StatusInternalServerError, "Failed to fetch quotation")
			return
		}

		var buf bytes.Buffer
		if err := services.RenderQuotationPDF(&buf, quotation); err != nil {
			log.Printf("Error rendering quotation %d: %v", id, err)
			utils.MessageResponse(c, http.StatusInternalServerError, "Failed to generate PDF")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.QuotationPDFFilename(quotation)))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
