// Package excel exporta las cotizaciones de un proyecto a una planilla XLSX.
package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

const sheetName = "Cotizaciones"

var _ ports.InquiryExporter = (*InquiryExporter)(nil)

// InquiryExporter implementa ports.InquiryExporter con excelize.
type InquiryExporter struct{}

// NewInquiryExporter construye el exportador.
func NewInquiryExporter() *InquiryExporter { return &InquiryExporter{} }

// column una columna de la planilla y cómo obtener su valor.
type column struct {
	header string
	width  float64
	value  func(q dto.InquiryResponse) any
}

func baseColumns() []column {
	return []column{
		{"Fecha", 18, func(q dto.InquiryResponse) any { return q.CreatedAt.Format("2006-01-02 15:04") }},
		{"Modelo", 28, func(q dto.InquiryResponse) any { return sanitizeCell(q.DeviceModel) }},
		{"Categoría", 20, func(q dto.InquiryResponse) any { return sanitizeCell(q.CategoryName) }},
		{"Cantidad", 10, func(q dto.InquiryResponse) any { return q.Quantity }},
		{"Estado", 12, func(q dto.InquiryResponse) any { return q.Status }},
		{"Precio venta EUR", 18, func(q dto.InquiryResponse) any { return num(q.SellPriceEUR) }},
		{"Precio venta IRR", 20, func(q dto.InquiryResponse) any { return numPtr(q.SellPriceIRR) }},
	}
}

func costColumns() []column {
	return []column{
		{"Precio lista fábrica EUR", 20, func(q dto.InquiryResponse) any { return numPtr(q.FactoryPriceEUR) }},
		{"Longitud (m)", 12, func(q dto.InquiryResponse) any { return numPtr(q.LengthMeter) }},
		{"Peso", 10, func(q dto.InquiryResponse) any { return numPtr(q.WeightUnit) }},
	}
}

func breakdownColumns() []column {
	b := func(f func(*pricing.Breakdown) decimal.Decimal) func(q dto.InquiryResponse) any {
		return func(q dto.InquiryResponse) any {
			if q.CalculationBreakdown == nil {
				return ""
			}
			return num(f(q.CalculationBreakdown))
		}
	}
	return []column{
		{"Precio compañía", 16, b(func(x *pricing.Breakdown) decimal.Decimal { return x.CompanyPrice })},
		{"Envío", 12, b(func(x *pricing.Breakdown) decimal.Decimal { return x.Shipment })},
		{"Aduana", 12, b(func(x *pricing.Breakdown) decimal.Decimal { return x.Customs })},
		{"Garantía", 12, b(func(x *pricing.Breakdown) decimal.Decimal { return x.Warranty })},
		{"Subtotal", 14, b(func(x *pricing.Breakdown) decimal.Decimal { return x.Subtotal })},
		{"Tras comisión", 14, b(func(x *pricing.Breakdown) decimal.Decimal { return x.AfterCommission })},
		{"Tras oficina", 14, b(func(x *pricing.Breakdown) decimal.Decimal { return x.AfterOffice })},
		{"Sin redondear", 14, b(func(x *pricing.Breakdown) decimal.Decimal { return x.RawSellPrice })},
		{"Redondeo", 12, func(q dto.InquiryResponse) any {
			if q.CalculationBreakdown == nil {
				return ""
			}
			return fmt.Sprintf("%s/%s", q.CalculationBreakdown.RoundingMode, q.CalculationBreakdown.RoundingStep)
		}},
		{"Tipo de cambio", 14, b(func(x *pricing.Breakdown) decimal.Decimal { return x.ExchangeRate })},
	}
}

// ExportInquiries arma la planilla. Las columnas de costo y desglose sólo
// aparecen cuando el rol del solicitante las puede ver.
func (e *InquiryExporter) ExportInquiries(project dto.ProjectResponse, inquiries []dto.InquiryResponse, includeCost, includeBreakdown bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	cols := baseColumns()
	if includeCost {
		cols = append(cols, costColumns()...)
	}
	if includeBreakdown {
		cols = append(cols, breakdownColumns()...)
	}
	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	// Filas 1-2: proyecto.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeCell(project.ProjectName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)
	f.SetCellValue(sheetName, "A2", sanitizeCell(fmt.Sprintf("%s · %s · %s", project.EmployerName, project.ProjectType, project.Status)))

	// Fila 4: cabecera.
	for i, c := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, name, name, c.width)
		f.SetCellValue(sheetName, name+"4", c.header)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	for r, q := range inquiries {
		rowNum := 5 + r
		for i, c := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
			f.SetCellValue(sheetName, cell, c.value(q))
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), cellStyle)
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 4, TopLeftCell: "A5", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

func numPtr(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#999999", Style: 1},
		{Type: "top", Color: "#999999", Style: 1},
		{Type: "right", Color: "#999999", Style: 1},
		{Type: "bottom", Color: "#999999", Style: 1},
	}
}

// sanitizeCell antepone una comilla a valores que Excel interpretaría como fórmula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
