package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsResponse coeficientes vigentes (solo admin).
type SettingsResponse struct {
	ID                 string          `json:"id"`
	IsActive           bool            `json:"is_active"`
	DiscountMultiplier decimal.Decimal `json:"discount_multiplier"`
	FreightPerMeter    decimal.Decimal `json:"freight_rate_per_meter_eur"`
	CustomsNumerator   decimal.Decimal `json:"customs_numerator"`
	CustomsDenominator decimal.Decimal `json:"customs_denominator"`
	WarrantyRate       decimal.Decimal `json:"warranty_rate"`
	CommissionFactor   decimal.Decimal `json:"commission_factor"`
	OfficeFactor       decimal.Decimal `json:"office_factor"`
	ProfitFactor       decimal.Decimal `json:"profit_factor"`
	RoundingMode       string          `json:"rounding_mode"`
	RoundingStep       decimal.Decimal `json:"rounding_step"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate_irr_per_eur"`
	UpdatedBy          string          `json:"updated_by,omitempty"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// UpdateSettingsRequest edición parcial de la fila activa; campos nil no cambian.
type UpdateSettingsRequest struct {
	DiscountMultiplier *decimal.Decimal `json:"discount_multiplier"`
	FreightPerMeter    *decimal.Decimal `json:"freight_rate_per_meter_eur"`
	CustomsNumerator   *decimal.Decimal `json:"customs_numerator"`
	CustomsDenominator *decimal.Decimal `json:"customs_denominator"`
	WarrantyRate       *decimal.Decimal `json:"warranty_rate"`
	CommissionFactor   *decimal.Decimal `json:"commission_factor"`
	OfficeFactor       *decimal.Decimal `json:"office_factor"`
	ProfitFactor       *decimal.Decimal `json:"profit_factor"`
	RoundingMode       *string          `json:"rounding_mode"`
	RoundingStep       *decimal.Decimal `json:"rounding_step"`
	ExchangeRate       *decimal.Decimal `json:"exchange_rate_irr_per_eur"`
}

// CreateSettingsRequest nueva fila de coeficientes; Activate la deja como vigente.
type CreateSettingsRequest struct {
	DiscountMultiplier decimal.Decimal `json:"discount_multiplier"`
	FreightPerMeter    decimal.Decimal `json:"freight_rate_per_meter_eur"`
	CustomsNumerator   decimal.Decimal `json:"customs_numerator"`
	CustomsDenominator decimal.Decimal `json:"customs_denominator"`
	WarrantyRate       decimal.Decimal `json:"warranty_rate"`
	CommissionFactor   decimal.Decimal `json:"commission_factor"`
	OfficeFactor       decimal.Decimal `json:"office_factor"`
	ProfitFactor       decimal.Decimal `json:"profit_factor"`
	RoundingMode       string          `json:"rounding_mode"`
	RoundingStep       decimal.Decimal `json:"rounding_step"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate_irr_per_eur"`
	Activate           bool            `json:"activate"`
}

// SimulateRequest cálculo de prueba: con DeviceID usa el costo del equipo, si no los valores dados.
type SimulateRequest struct {
	DeviceID        string          `json:"device_id"`
	FactoryPriceEUR decimal.Decimal `json:"factory_pricelist_eur"`
	LengthMeter     decimal.Decimal `json:"length_meter"`
	WeightUnit      decimal.Decimal `json:"weight_unit"`
}
