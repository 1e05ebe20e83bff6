package services

import (
	"bytes"
	"fmt"

	"quotation-backend/models"
	"quotation-backend/utils"

	"github.com/xuri/excelize/v2"
)

const QuotationsSheet = "Quotations"

type exportColumn struct {
	header string
	width  float64
}

var quotationColumns = []exportColumn{
	{"Name", 20},
	{"Email", 25},
	{"Phone", 15},
	{"Message", 30},
	{"Grand Total (₹)", 20},
	{"Table Details", 60},
	{"Created At", 22},
}

// BuildQuotationsWorkbook renders quotations as an .xlsx workbook with one
// styled header row and one row per quotation.
func BuildQuotationsWorkbook(quotations []models.Quotation) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", QuotationsSheet); err != nil {
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4F81BD"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Vertical: "top",
			WrapText: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating row style: %w", err)
	}

	for i, col := range quotationColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(QuotationsSheet, name, name, col.width); err != nil {
			return nil, err
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(QuotationsSheet, cell, col.header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(quotationColumns))
	if err := f.SetCellStyle(QuotationsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	for i, q := range quotations {
		row := i + 2
		values := []interface{}{
			q.Name,
			q.Email,
			q.Phone,
			q.Message,
			q.GrandTotal.InexactFloat64(),
			FormatTableDetailsForDisplay(q.TableDetails),
			utils.FormatTimestamp(q.CreatedAt),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(QuotationsSheet, cell, v)
		}
		if err := f.SetCellStyle(QuotationsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), rowStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}
