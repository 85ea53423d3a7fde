package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/visibility"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// DeviceUseCase catálogo de equipos. Toda salida pasa por el filtro de visibilidad.
type DeviceUseCase struct {
	devices    repository.DeviceRepository
	categories repository.CategoryRepository
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(devices repository.DeviceRepository, categories repository.CategoryRepository) *DeviceUseCase {
	return &DeviceUseCase{devices: devices, categories: categories}
}

// Create alta de equipo (solo admin).
func (uc *DeviceUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.ModelName) == "" || in.CategoryID == "" {
		return nil, fmt.Errorf("%w: model_name y category_id son obligatorios", domain.ErrValidation)
	}
	if err := validateCost(in.FactoryPriceEUR, in.LengthMeter, in.WeightUnit); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d := &entity.Device{
		ID:           uuid.New().String(),
		CategoryID:   in.CategoryID,
		ModelName:    strings.TrimSpace(in.ModelName),
		FactoryPrice: in.FactoryPriceEUR,
		Length:       in.LengthMeter,
		Weight:       in.WeightUnit,
		IsActive:     in.IsActive == nil || *in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.devices.Create(ctx, d); err != nil {
		return nil, err
	}
	return uc.project(ctx, actor, d)
}

// Update edición parcial (solo admin).
func (uc *DeviceUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	d, err := uc.devices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID != nil {
		d.CategoryID = *in.CategoryID
	}
	if in.ModelName != nil {
		if strings.TrimSpace(*in.ModelName) == "" {
			return nil, fmt.Errorf("%w: model_name vacío", domain.ErrValidation)
		}
		d.ModelName = strings.TrimSpace(*in.ModelName)
	}
	if in.FactoryPriceEUR != nil {
		d.FactoryPrice = *in.FactoryPriceEUR
	}
	if in.LengthMeter != nil {
		d.Length = *in.LengthMeter
	}
	if in.WeightUnit != nil {
		d.Weight = *in.WeightUnit
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if err := validateCost(d.FactoryPrice, d.Length, d.Weight); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now().UTC()
	if err := uc.devices.Update(ctx, d); err != nil {
		return nil, err
	}
	return uc.project(ctx, actor, d)
}

// Get un equipo; los inactivos solo los ve admin.
func (uc *DeviceUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.DeviceResponse, error) {
	d, err := uc.devices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || (!d.IsActive && !actor.IsAdmin()) {
		return nil, domain.ErrNotFound
	}
	return uc.project(ctx, actor, d)
}

// Search busca por texto y categoría.
func (uc *DeviceUseCase) Search(ctx context.Context, actor entity.Actor, in dto.DeviceSearchRequest) ([]dto.DeviceResponse, error) {
	in.DefaultPage()
	list, err := uc.devices.Search(ctx, repository.DeviceFilter{
		Query:           strings.TrimSpace(in.Query),
		CategoryID:      in.CategoryID,
		IncludeInactive: actor.IsAdmin(),
		Limit:           in.Limit,
		Offset:          in.Offset,
	})
	if err != nil {
		return nil, err
	}
	names, err := uc.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		out = append(out, visibility.Device(actor.Role, d, names[d.CategoryID]))
	}
	return out, nil
}

// Delete baja de equipo (solo admin). Con cotizaciones asociadas devuelve ErrConflict.
func (uc *DeviceUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.devices.Delete(ctx, id)
}

func (uc *DeviceUseCase) project(ctx context.Context, actor entity.Actor, d *entity.Device) (*dto.DeviceResponse, error) {
	name := ""
	c, err := uc.categories.GetByID(ctx, d.CategoryID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		name = c.Name
	}
	resp := visibility.Device(actor.Role, d, name)
	return &resp, nil
}

func (uc *DeviceUseCase) categoryNames(ctx context.Context) (map[string]string, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, c := range list {
		names[c.ID] = c.Name
	}
	return names, nil
}

func validateCost(p, l, w decimal.Decimal) error {
	if p.IsNegative() || l.IsNegative() || w.IsNegative() {
		return fmt.Errorf("%w: precio, longitud y peso no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}
