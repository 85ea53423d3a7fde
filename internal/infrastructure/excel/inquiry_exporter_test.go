package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

func fixtures() (dto.ProjectResponse, []dto.InquiryResponse) {
	p := dto.ProjectResponse{ID: "p-1", ProjectName: "Torre Norte", EmployerName: "Acme", ProjectType: "commercial", Status: "approved"}
	cost := decimal.NewFromInt(20000)
	q := dto.InquiryResponse{
		ID: "q-1", ProjectID: "p-1", DeviceModel: "VRF-200", CategoryName: "VRF",
		Quantity: 2, Status: "pending", SellPriceEUR: decimal.NewFromInt(49640),
		FactoryPriceEUR:      &cost,
		CalculationBreakdown: &pricing.Breakdown{CompanyPrice: decimal.NewFromInt(19000), RoundingMode: "ceil", RoundingStep: decimal.NewFromInt(10)},
		CreatedAt:            time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	return p, []dto.InquiryResponse{q}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExportInquiries_PublicColumnsOnly(t *testing.T) {
	p, qs := fixtures()
	data, err := NewInquiryExporter().ExportInquiries(p, qs, false, false)
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Torre Norte", rows[0][0])
	assert.Len(t, rows[3], len(baseColumns()))
	assert.NotContains(t, rows[3], "Precio lista fábrica EUR")
	assert.Equal(t, "VRF-200", rows[4][1])
	assert.Equal(t, "49640", rows[4][5])
}

func TestExportInquiries_AdminColumns(t *testing.T) {
	p, qs := fixtures()
	data, err := NewInquiryExporter().ExportInquiries(p, qs, true, true)
	require.NoError(t, err)

	rows, err := open(t, data).GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows[3], len(baseColumns())+len(costColumns())+len(breakdownColumns()))
	assert.Contains(t, rows[3], "Precio lista fábrica EUR")
	assert.Contains(t, rows[3], "Precio compañía")
	assert.Equal(t, "20000", rows[4][len(baseColumns())])
}

func TestExportInquiries_Empty(t *testing.T) {
	p, _ := fixtures()
	data, err := NewInquiryExporter().ExportInquiries(p, nil, false, false)
	require.NoError(t, err)
	rows, err := open(t, data).GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestSanitizeCell(t *testing.T) {
	assert.Equal(t, "'=SUM(A1)", sanitizeCell("=SUM(A1)"))
	assert.Equal(t, "VRF", sanitizeCell("VRF"))
	assert.Equal(t, "", sanitizeCell(""))
}
