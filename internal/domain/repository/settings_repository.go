package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// SettingsRepository persistencia de PricingSettings.
type SettingsRepository interface {
	// GetActive devuelve (nil, nil) sin fila activa y domain.ErrConflict si hay más de una.
	GetActive(ctx context.Context) (*entity.PricingSettings, error)
	GetByID(ctx context.Context, id string) (*entity.PricingSettings, error)
	Create(ctx context.Context, s *entity.PricingSettings) error
	Update(ctx context.Context, s *entity.PricingSettings) error
	// Activate deja activa únicamente la fila id.
	Activate(ctx context.Context, id string) error
}

// AuditRepository bitácora de auditoría (solo inserción).
type AuditRepository interface {
	Append(ctx context.Context, log *entity.AuditLog) error
	ListByEntity(ctx context.Context, entityName, entityID string) ([]*entity.AuditLog, error)
}
