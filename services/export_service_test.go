package services

import (
	"testing"
	"time"

	"quotation-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildQuotationsWorkbook(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)
	buf, err := BuildQuotationsWorkbook([]models.Quotation{
		{ID: 2, Name: "Asha", Email: "asha@example.com", Phone: "123", TableDetails: "Basic: Logo, Banner", GrandTotal: models.ParseMoney("123.5"), CreatedAt: created},
		{ID: 1, Name: "Ravi", Email: "ravi@example.com", Phone: "456"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{QuotationsSheet}, f.GetSheetList())

	rows, err := f.GetRows(QuotationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Email", "Phone", "Message", "Grand Total (₹)", "Table Details", "Created At"}, rows[0])
	assert.Equal(t, "Asha", rows[1][0])
	assert.Equal(t, "Basic: Logo\n Banner", rows[1][5])
	assert.Equal(t, "2024-05-01 09:30:00", rows[1][6])
	assert.Equal(t, "N/A", rows[2][5])
	assert.Equal(t, "N/A", rows[2][6])

	width, err := f.GetColWidth(QuotationsSheet, "F")
	require.NoError(t, err)
	assert.Equal(t, 60.0, width)
}

func TestBuildQuotationsWorkbook_Empty(t *testing.T) {
	buf, err := BuildQuotationsWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(QuotationsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
