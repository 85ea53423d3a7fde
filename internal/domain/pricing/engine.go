// Package pricing calcula el precio de venta de un equipo a partir de su costo de fábrica
// y los coeficientes de negocio. Es puro y determinista: mismas entradas, mismo desglose.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
)

// Modos de redondeo.
const (
	RoundingNone  = "none"
	RoundingRound = "round"
	RoundingCeil  = "ceil"
	RoundingFloor = "floor"
)

// IsValidRoundingMode informa si mode es un modo conocido.
func IsValidRoundingMode(mode string) bool {
	switch mode {
	case RoundingNone, RoundingRound, RoundingCeil, RoundingFloor:
		return true
	}
	return false
}

// DeviceCost datos confidenciales de costo del equipo.
type DeviceCost struct {
	FactoryPrice decimal.Decimal // P
	Length       decimal.Decimal // L
	Weight       decimal.Decimal // W
}

// Coefficients coeficientes de negocio vigentes al momento del cálculo.
type Coefficients struct {
	Discount           decimal.Decimal // D
	FreightPerMeter    decimal.Decimal // F
	CustomsNumerator   decimal.Decimal // CN
	CustomsDenominator decimal.Decimal // CD
	WarrantyRate       decimal.Decimal // WR
	Commission         decimal.Decimal // COM
	Office             decimal.Decimal // OFF
	Profit             decimal.Decimal // PF
	RoundingMode       string
	RoundingStep       decimal.Decimal
	ExchangeRate       decimal.Decimal // 0 = sin conversión
}

// Validate verifica que ningún divisor sea cero.
func (c Coefficients) Validate() error {
	divisors := []struct {
		name string
		v    decimal.Decimal
	}{
		{"customs_denominator", c.CustomsDenominator},
		{"commission_factor", c.Commission},
		{"office_factor", c.Office},
		{"profit_factor", c.Profit},
	}
	for _, d := range divisors {
		if d.v.IsZero() {
			return fmt.Errorf("%w: %s no puede ser cero", domain.ErrInvalidSettings, d.name)
		}
	}
	return nil
}

// Breakdown desglose completo del cálculo: entradas, intermedios y resultado.
type Breakdown struct {
	FactoryPrice       decimal.Decimal `json:"P"`
	Length             decimal.Decimal `json:"L"`
	Weight             decimal.Decimal `json:"W"`
	Discount           decimal.Decimal `json:"D"`
	FreightPerMeter    decimal.Decimal `json:"F"`
	CustomsNumerator   decimal.Decimal `json:"CN"`
	CustomsDenominator decimal.Decimal `json:"CD"`
	WarrantyRate       decimal.Decimal `json:"WR"`
	Commission         decimal.Decimal `json:"COM"`
	Office             decimal.Decimal `json:"OFF"`
	Profit             decimal.Decimal `json:"PF"`
	RoundingMode       string          `json:"rounding_mode"`
	RoundingStep       decimal.Decimal `json:"rounding_step"`

	CompanyPrice    decimal.Decimal `json:"company_price_eur"`
	Shipment        decimal.Decimal `json:"shipment_eur"`
	Customs         decimal.Decimal `json:"custom_eur"`
	Warranty        decimal.Decimal `json:"warranty_eur"`
	Subtotal        decimal.Decimal `json:"subtotal_eur"`
	AfterCommission decimal.Decimal `json:"after_commission_eur"`
	AfterOffice     decimal.Decimal `json:"after_office_eur"`
	RawSellPrice    decimal.Decimal `json:"sell_price_raw_eur"`
	FinalSellPrice  decimal.Decimal `json:"sell_price_eur"`

	ExchangeRate decimal.Decimal  `json:"exchange_rate_irr_per_eur"`
	SellPriceIRR *decimal.Decimal `json:"sell_price_irr,omitempty"`
}

// Compute ejecuta el cálculo completo. No lee estado externo.
func Compute(cost DeviceCost, c Coefficients) (Breakdown, error) {
	if cost.FactoryPrice.IsNegative() || cost.Length.IsNegative() || cost.Weight.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: precio, longitud y peso no pueden ser negativos", domain.ErrInvalidInput)
	}
	if err := c.Validate(); err != nil {
		return Breakdown{}, err
	}

	companyPrice := cost.FactoryPrice.Mul(c.Discount)
	shipment := cost.Length.Mul(c.FreightPerMeter)
	customs := cost.Weight.Mul(c.CustomsNumerator.Div(c.CustomsDenominator))
	warranty := companyPrice.Mul(c.WarrantyRate)
	subtotal := companyPrice.Add(shipment).Add(customs).Add(warranty)
	afterCommission := subtotal.Div(c.Commission)
	afterOffice := afterCommission.Div(c.Office)
	sell := afterOffice.Div(c.Profit)
	final := ApplyRounding(sell, c.RoundingMode, c.RoundingStep)

	b := Breakdown{
		FactoryPrice:       cost.FactoryPrice,
		Length:             cost.Length,
		Weight:             cost.Weight,
		Discount:           c.Discount,
		FreightPerMeter:    c.FreightPerMeter,
		CustomsNumerator:   c.CustomsNumerator,
		CustomsDenominator: c.CustomsDenominator,
		WarrantyRate:       c.WarrantyRate,
		Commission:         c.Commission,
		Office:             c.Office,
		Profit:             c.Profit,
		RoundingMode:       c.RoundingMode,
		RoundingStep:       c.RoundingStep,
		CompanyPrice:       companyPrice,
		Shipment:           shipment,
		Customs:            customs,
		Warranty:           warranty,
		Subtotal:           subtotal,
		AfterCommission:    afterCommission,
		AfterOffice:        afterOffice,
		RawSellPrice:       sell,
		FinalSellPrice:     final,
		ExchangeRate:       c.ExchangeRate,
	}
	if c.ExchangeRate.IsPositive() {
		irr := final.Mul(c.ExchangeRate)
		b.SellPriceIRR = &irr
	}
	return b, nil
}

// ApplyRounding redondea v al múltiplo de step según mode. Con step <= 0 o modo desconocido devuelve v.
func ApplyRounding(v decimal.Decimal, mode string, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return v
	}
	q := v.Div(step)
	switch mode {
	case RoundingRound:
		return q.Round(0).Mul(step)
	case RoundingCeil:
		return q.Ceil().Mul(step)
	case RoundingFloor:
		return q.Floor().Mul(step)
	default:
		return v
	}
}
