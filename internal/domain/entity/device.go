package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Device representa un modelo de equipo del catálogo.
// FactoryPrice, Length y Weight son confidenciales: solo el filtro de visibilidad decide quién los ve.
type Device struct {
	ID           string
	CategoryID   string
	ModelName    string
	FactoryPrice decimal.Decimal // P, precio de lista de fábrica en EUR
	Length       decimal.Decimal // L, longitud de envío en metros
	Weight       decimal.Decimal // W, peso
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
