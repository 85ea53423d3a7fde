package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// Estados de ProjectInquiry.
const (
	InquiryPending  = "pending"
	InquiryApproved = "approved"
	InquiryRejected = "rejected"
)

// ProjectInquiry solicitud de cotización de un equipo para un proyecto.
// Los campos *Snapshot y CalculationBreakdown se fijan al crear y nunca cambian.
type ProjectInquiry struct {
	ID                   string
	ProjectID            string
	RequestedByUserID    string
	DeviceID             string
	CategoryID           string
	DeviceModel          string
	CategoryName         string
	Quantity             int
	Status               string
	AdminDecisionAt      *time.Time
	AdminDecisionBy      *string
	SellPriceEURSnapshot decimal.Decimal
	SellPriceIRRSnapshot *decimal.Decimal
	CalculationBreakdown pricing.Breakdown
	CreatedAt            time.Time
}
