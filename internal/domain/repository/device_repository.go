package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// DeviceFilter criterios de búsqueda del catálogo.
type DeviceFilter struct {
	Query           string // texto libre sobre model_name
	CategoryID      string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// DeviceRepository define el puerto de persistencia para Device (DIP).
type DeviceRepository interface {
	Create(ctx context.Context, device *entity.Device) error
	GetByID(ctx context.Context, id string) (*entity.Device, error)
	Update(ctx context.Context, device *entity.Device) error
	Search(ctx context.Context, filter DeviceFilter) ([]*entity.Device, error)
	Delete(ctx context.Context, id string) error
}
