package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"category_name"`
	Description string `json:"description"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"category_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateDeviceRequest alta de equipo (solo admin).
type CreateDeviceRequest struct {
	CategoryID      string          `json:"category_id"`
	ModelName       string          `json:"model_name"`
	FactoryPriceEUR decimal.Decimal `json:"factory_pricelist_eur"`
	LengthMeter     decimal.Decimal `json:"length_meter"`
	WeightUnit      decimal.Decimal `json:"weight_unit"`
	IsActive        *bool           `json:"is_active"`
}

// UpdateDeviceRequest edición parcial de equipo; campos nil no cambian.
type UpdateDeviceRequest struct {
	CategoryID      *string          `json:"category_id"`
	ModelName       *string          `json:"model_name"`
	FactoryPriceEUR *decimal.Decimal `json:"factory_pricelist_eur"`
	LengthMeter     *decimal.Decimal `json:"length_meter"`
	WeightUnit      *decimal.Decimal `json:"weight_unit"`
	IsActive        *bool            `json:"is_active"`
}

// DeviceSearchRequest filtros de búsqueda de equipos.
type DeviceSearchRequest struct {
	Query      string `query:"query"`
	CategoryID string `query:"category_id"`
	PageRequest
}

// DeviceResponse vista de un equipo. Los campos puntero son confidenciales
// y solo se llenan para los roles que pueden verlos.
type DeviceResponse struct {
	ID              string           `json:"id"`
	CategoryID      string           `json:"category_id"`
	CategoryName    string           `json:"category_name,omitempty"`
	ModelName       string           `json:"model_name"`
	IsActive        bool             `json:"is_active"`
	FactoryPriceEUR *decimal.Decimal `json:"factory_pricelist_eur,omitempty"`
	LengthMeter     *decimal.Decimal `json:"length_meter,omitempty"`
	WeightUnit      *decimal.Decimal `json:"weight_unit,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
