package services

import (
	"bytes"
	"fmt"
	"io"

	"quotation-backend/models"
	"quotation-backend/utils"

	"github.com/gosimple/slug"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// QuotationQRContent is the payload encoded in a summary's QR code.
func QuotationQRContent(q *models.Quotation) string {
	return fmt.Sprintf("quotation:%d:%s", q.ID, q.Email)
}

// QuotationPDFFilename is the download name, e.g. quotation-42-asha-verma.pdf.
func QuotationPDFFilename(q *models.Quotation) string {
	name := slug.Make(q.Name)
	if name == "" {
		return fmt.Sprintf("quotation-%d.pdf", q.ID)
	}
	return fmt.Sprintf("quotation-%d-%s.pdf", q.ID, name)
}

// RenderQuotationPDF writes an A4 summary of a stored quotation to w.
func RenderQuotationPDF(w io.Writer, q *models.Quotation) error {
	qrPNG, err := qrcode.Encode(QuotationQRContent(q), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Quotation %d", q.ID), true)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 12, "Quotation Summary", "1", 1, "C", true, 0, "")
	pdf.SetFillColor(255, 255, 255)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	qrName := fmt.Sprintf("qr_%d", q.ID)
	pdf.RegisterImageOptionsReader(qrName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrName, 160, 30, 35, 35, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(140, 8, fmt.Sprintf("Quotation #%d", q.ID))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(140, 6, "Submitted: "+utils.FormatTimestamp(q.CreatedAt))
	pdf.Ln(6)
	pdf.Cell(140, 6, tr("Prepared for: "+cases.Title(language.English).String(q.Name)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(140, 8, "Client Details", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	message := q.Message
	if message == "" {
		message = "N/A"
	}
	rows := [][2]string{
		{"Name", q.Name},
		{"Email", q.Email},
		{"Phone", q.Phone},
		{"Message", message},
		{"Grand Total", "Rs. " + utils.FormatAmount(q.GrandTotal)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(155, 7, tr(row[1]), "1", "L", false)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Requirements", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(190, 5, tr(FormatTableDetailsForDisplay(q.TableDetails)), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
