// Package pdf genera el documento de cotización de un equipo HVAC.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° cotización  │  Fecha de emisión        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROYECTO: Nombre / Empleador / Tipo / Dirección            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Modelo | Categoría | P.Unit | Total          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COSTO + DESGLOSE (sólo si el rol los ve)                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: estado de la cotización + leyenda                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.QuotePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.QuotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author se imprime en los metadatos.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: nonEmpty(author, "Cotizador HVAC")}
}

// GenerateQuote genera el PDF y devuelve sus bytes. Sólo imprime los campos
// que vienen presentes en la cotización proyectada.
func (g *MarotoPDFGenerator) GenerateQuote(doc dto.QuoteDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+doc.Inquiry.DeviceModel, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(projectRows(doc.Project)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(itemTableHeader(doc.CurrencyLabel))
	m.AddRows(itemRow(doc))
	m.AddRows(totalsRow(doc))

	q := doc.Inquiry
	if q.FactoryPriceEUR != nil || q.LengthMeter != nil || q.WeightUnit != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
		m.AddRows(costRows(doc)...)
	}
	if q.CalculationBreakdown != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
		m.AddRows(breakdownRows(q.CalculationBreakdown, doc.CurrencyLabel)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc dto.QuoteDocument) core.Row {
	return row.New(20).Add(
		col.New(8).Add(
			text.New("COTIZACIÓN DE EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
			text.New("N° "+doc.Inquiry.ID, props.Text{Size: 8, Color: colorGray, Top: 10}),
		),
		col.New(4).Add(
			text.New("Fecha de emisión", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
			}),
			text.New(doc.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func projectRows(p dto.ProjectResponse) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(5).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(value, props.Text{Size: 8, Top: 1})),
		)
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("PROYECTO", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}))),
		field("Nombre:", p.ProjectName),
		field("Empleador:", nonEmpty(p.EmployerName, "-")),
		field("Tipo:", p.ProjectType),
		field("Dirección:", nonEmpty(p.AddressText, "-")),
	}
	if p.AdditionalInfo != "" {
		rows = append(rows, field("Notas:", p.AdditionalInfo))
	}
	return rows
}

func itemTableHeader(currency string) core.Row {
	cell := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5,
		})
	}
	return row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		col.New(1).Add(cell("Cant.", align.Center)),
		col.New(4).Add(cell("Modelo", align.Left)),
		col.New(3).Add(cell("Categoría", align.Left)),
		col.New(2).Add(cell("P. Unit. "+currency, align.Right)),
		col.New(2).Add(cell("Total "+currency, align.Right)),
	)
}

func itemRow(doc dto.QuoteDocument) core.Row {
	q := doc.Inquiry
	total := q.SellPriceEUR.Mul(decimal.NewFromInt(int64(q.Quantity)))
	return row.New(7).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", q.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(4).Add(text.New(q.DeviceModel, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(3).Add(text.New(nonEmpty(q.CategoryName, "-"), props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(formatAmount(q.SellPriceEUR, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(formatAmount(total, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func totalsRow(doc dto.QuoteDocument) core.Row {
	q := doc.Inquiry
	qty := decimal.NewFromInt(int64(q.Quantity))

	labels := []core.Component{
		text.New("TOTAL "+doc.CurrencyLabel+":", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
		}),
	}
	values := []core.Component{
		text.New(formatAmount(q.SellPriceEUR.Mul(qty), 2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
		}),
	}
	if q.SellPriceIRR != nil {
		labels = append(labels, text.New("TOTAL "+doc.SecondaryLabel+":", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
		}))
		values = append(values, text.New(formatAmount(q.SellPriceIRR.Mul(qty), 0), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: 6,
		}))
	}

	return row.New(14).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

func costRows(doc dto.QuoteDocument) []core.Row {
	q := doc.Inquiry
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("COSTO", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}))),
	}
	add := func(label string, v *decimal.Decimal) {
		if v == nil {
			return
		}
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(label, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(formatAmount(*v, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	add("Precio de lista de fábrica ("+doc.CurrencyLabel+")", q.FactoryPriceEUR)
	add("Longitud (m)", q.LengthMeter)
	add("Peso (unidades)", q.WeightUnit)
	return rows
}

func breakdownRows(b *pricing.Breakdown, currency string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("DESGLOSE DEL CÁLCULO", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}))),
	}
	pair := func(l1 string, v1 decimal.Decimal, l2 string, v2 decimal.Decimal) core.Row {
		return row.New(5).Add(
			col.New(4).Add(text.New(l1, props.Text{Size: 7.5, Top: 1})),
			col.New(2).Add(text.New(formatAmount(v1, 4), props.Text{Size: 7.5, Align: align.Right, Top: 1})),
			col.New(4).Add(text.New(l2, props.Text{Size: 7.5, Top: 1, Left: 4})),
			col.New(2).Add(text.New(formatAmount(v2, 2), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
		)
	}
	rows = append(rows,
		pair("Descuento (D)", b.Discount, "Precio compañía "+currency, b.CompanyPrice),
		pair("Flete por metro (F)", b.FreightPerMeter, "Envío "+currency, b.Shipment),
		pair("Aduana (CN/CD)", b.CustomsNumerator.Div(b.CustomsDenominator), "Aduana "+currency, b.Customs),
		pair("Garantía (WR)", b.WarrantyRate, "Garantía "+currency, b.Warranty),
		pair("Comisión (COM)", b.Commission, "Subtotal "+currency, b.Subtotal),
		pair("Oficina (OFF)", b.Office, "Tras comisión "+currency, b.AfterCommission),
		pair("Ganancia (PF)", b.Profit, "Tras oficina "+currency, b.AfterOffice),
		pair("Paso de redondeo", b.RoundingStep, "Precio sin redondear "+currency, b.RawSellPrice),
	)
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New("Modo de redondeo: "+b.RoundingMode, props.Text{Size: 7.5, Top: 1})),
		col.New(4).Add(text.New("Precio final "+currency, props.Text{Style: fontstyle.Bold, Size: 7.5, Top: 1, Left: 4})),
		col.New(2).Add(text.New(formatAmount(b.FinalSellPrice, 2), props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: align.Right, Top: 1, Right: 1,
		})),
	))
	if b.ExchangeRate.IsPositive() {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(
			"Tipo de cambio: "+formatAmount(b.ExchangeRate, 2)+" por "+currency,
			props.Text{Size: 7.5, Color: colorGray, Top: 1},
		))))
	}
	return rows
}

func footerRows(doc dto.QuoteDocument) []core.Row {
	status := "Estado de la cotización: " + doc.Inquiry.Status
	if doc.Inquiry.AdminDecisionAt != nil {
		status += " (" + doc.Inquiry.AdminDecisionAt.Format("02/01/2006") + ")"
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(text.New(status, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}))),
		row.New(8).Add(col.New(12).Add(text.New(
			"Precios calculados con la configuración vigente al momento de la cotización. "+
				"Sujetos a aprobación administrativa.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		))),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount fija places decimales e inserta puntos de miles en la parte entera.
// Ej: 49640 → "49.640,00", 29784000000 (0 decimales) → "29.784.000.000"
func formatAmount(v decimal.Decimal, places int32) string {
	s := v.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		return sign + string(buf) + "," + frac
	}
	return sign + string(buf)
}
