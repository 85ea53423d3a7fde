package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// PricingSettings coeficientes de negocio usados por el motor de precios.
// Solo una fila puede estar activa; sin fila activa no se cotiza.
type PricingSettings struct {
	ID                 string
	IsActive           bool
	DiscountMultiplier decimal.Decimal // D
	FreightPerMeter    decimal.Decimal // F
	CustomsNumerator   decimal.Decimal // CN
	CustomsDenominator decimal.Decimal // CD
	WarrantyRate       decimal.Decimal // WR
	CommissionFactor   decimal.Decimal // COM
	OfficeFactor       decimal.Decimal // OFF
	ProfitFactor       decimal.Decimal // PF
	RoundingMode       string
	RoundingStep       decimal.Decimal
	ExchangeRate       decimal.Decimal // IRR por EUR, 0 = sin moneda secundaria
	UpdatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Coefficients copia los valores por valor: un cálculo en curso no ve cambios posteriores.
func (s PricingSettings) Coefficients() pricing.Coefficients {
	return pricing.Coefficients{
		Discount:           s.DiscountMultiplier,
		FreightPerMeter:    s.FreightPerMeter,
		CustomsNumerator:   s.CustomsNumerator,
		CustomsDenominator: s.CustomsDenominator,
		WarrantyRate:       s.WarrantyRate,
		Commission:         s.CommissionFactor,
		Office:             s.OfficeFactor,
		Profit:             s.ProfitFactor,
		RoundingMode:       s.RoundingMode,
		RoundingStep:       s.RoundingStep,
		ExchangeRate:       s.ExchangeRate,
	}
}
