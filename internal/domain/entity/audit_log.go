package entity

import (
	"time"

	"github.com/google/uuid"
)

// Acciones registradas en AuditLog.
const (
	AuditProjectCreate    = "project.create"
	AuditProjectDecide    = "project.decide"
	AuditProjectStatus    = "project.status"
	AuditProjectDelete    = "project.delete"
	AuditInquiryCreate    = "inquiry.create"
	AuditInquiryDecide    = "inquiry.decide"
	AuditSettingsUpdate   = "settings.update"
	AuditSettingsCreate   = "settings.create"
	AuditSettingsActivate = "settings.activate"
)

// AuditLog traza de una mutación, escrita en la misma transacción.
type AuditLog struct {
	ID          string
	ActorUserID string
	Action      string
	Entity      string
	EntityID    string
	Detail      map[string]any
	CreatedAt   time.Time
}

// NewAuditLog arma una entrada de auditoría con ID nuevo.
func NewAuditLog(actorID, action, entityName, entityID string, detail map[string]any, at time.Time) *AuditLog {
	return &AuditLog{
		ID:          uuid.New().String(),
		ActorUserID: actorID,
		Action:      action,
		Entity:      entityName,
		EntityID:    entityID,
		Detail:      detail,
		CreatedAt:   at,
	}
}
