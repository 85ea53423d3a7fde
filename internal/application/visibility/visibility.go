// Package visibility proyecta equipos y cotizaciones según el rol del usuario.
// Cada campo expuesto está clasificado en fieldTiers; lo no clasificado es solo admin.
package visibility

import (
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// Tier nivel de visibilidad; cada nivel incluye a los anteriores.
type Tier int

const (
	TierPublic Tier = iota
	TierSalesManager
	TierAdmin
)

// fieldTiers clasificación por nombre JSON del campo.
var fieldTiers = map[string]Tier{
	"id":                   TierPublic,
	"project_id":           TierPublic,
	"requested_by_user_id": TierPublic,
	"device_id":            TierPublic,
	"category_id":          TierPublic,
	"category_name":        TierPublic,
	"model_name":           TierPublic,
	"is_active":            TierPublic,
	"quantity":             TierPublic,
	"status":               TierPublic,
	"admin_decision_at":    TierPublic,
	"admin_decision_by":    TierPublic,
	"sell_price_eur":       TierPublic,
	"sell_price_irr":       TierPublic,
	"created_at":           TierPublic,
	"updated_at":           TierPublic,

	"factory_pricelist_eur": TierSalesManager,

	"length_meter":          TierAdmin,
	"weight_unit":           TierAdmin,
	"calculation_breakdown": TierAdmin,
}

// RoleTier nivel de un rol. Un rol desconocido ve solo lo público.
func RoleTier(role string) Tier {
	switch role {
	case entity.RoleAdmin:
		return TierAdmin
	case entity.RoleSalesManager:
		return TierSalesManager
	default:
		return TierPublic
	}
}

// FieldTier nivel requerido para un campo; TierAdmin si no está clasificado.
func FieldTier(field string) Tier {
	if t, ok := fieldTiers[field]; ok {
		return t
	}
	return TierAdmin
}

// IsClassified informa si el campo está en la tabla.
func IsClassified(field string) bool {
	_, ok := fieldTiers[field]
	return ok
}

// CanSee informa si role puede ver field.
func CanSee(role, field string) bool {
	return RoleTier(role) >= FieldTier(field)
}

// Device proyecta un equipo para role.
func Device(role string, d *entity.Device, categoryName string) dto.DeviceResponse {
	out := dto.DeviceResponse{
		ID:           d.ID,
		CategoryID:   d.CategoryID,
		CategoryName: categoryName,
		ModelName:    d.ModelName,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if CanSee(role, "factory_pricelist_eur") {
		p := d.FactoryPrice
		out.FactoryPriceEUR = &p
	}
	if CanSee(role, "length_meter") {
		l := d.Length
		out.LengthMeter = &l
	}
	if CanSee(role, "weight_unit") {
		w := d.Weight
		out.WeightUnit = &w
	}
	return out
}

// Inquiry proyecta una cotización para role. Los costos salen del snapshot, no del equipo actual.
func Inquiry(role string, q *entity.ProjectInquiry) dto.InquiryResponse {
	out := dto.InquiryResponse{
		ID:                q.ID,
		ProjectID:         q.ProjectID,
		RequestedByUserID: q.RequestedByUserID,
		DeviceID:          q.DeviceID,
		CategoryID:        q.CategoryID,
		CategoryName:      q.CategoryName,
		DeviceModel:       q.DeviceModel,
		Quantity:          q.Quantity,
		Status:            q.Status,
		AdminDecisionAt:   q.AdminDecisionAt,
		AdminDecisionBy:   q.AdminDecisionBy,
		SellPriceEUR:      q.SellPriceEURSnapshot,
		CreatedAt:         q.CreatedAt,
	}
	if q.SellPriceIRRSnapshot != nil && CanSee(role, "sell_price_irr") {
		irr := *q.SellPriceIRRSnapshot
		out.SellPriceIRR = &irr
	}
	b := q.CalculationBreakdown
	if CanSee(role, "factory_pricelist_eur") {
		p := b.FactoryPrice
		out.FactoryPriceEUR = &p
	}
	if CanSee(role, "length_meter") {
		l := b.Length
		out.LengthMeter = &l
	}
	if CanSee(role, "weight_unit") {
		w := b.Weight
		out.WeightUnit = &w
	}
	out.CalculationBreakdown = Breakdown(role, b)
	return out
}

// Inquiries proyecta una lista.
func Inquiries(role string, list []*entity.ProjectInquiry) []dto.InquiryResponse {
	out := make([]dto.InquiryResponse, 0, len(list))
	for _, q := range list {
		out = append(out, Inquiry(role, q))
	}
	return out
}

// Breakdown devuelve una copia del desglose o nil si role no puede verlo.
func Breakdown(role string, b pricing.Breakdown) *pricing.Breakdown {
	if !CanSee(role, "calculation_breakdown") {
		return nil
	}
	cp := b
	if b.SellPriceIRR != nil {
		irr := *b.SellPriceIRR
		cp.SellPriceIRR = &irr
	}
	return &cp
}
