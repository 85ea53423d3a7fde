package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// SettingsUseCase administración de coeficientes de precio (solo admin).
type SettingsUseCase struct {
	tx       ports.TxRunner
	settings repository.SettingsRepository
	devices  repository.DeviceRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(tx ports.TxRunner, settings repository.SettingsRepository, devices repository.DeviceRepository) *SettingsUseCase {
	return &SettingsUseCase{tx: tx, settings: settings, devices: devices}
}

// GetActive fila vigente; ErrInvalidSettings si no hay ninguna.
func (uc *SettingsUseCase) GetActive(ctx context.Context, actor entity.Actor) (*dto.SettingsResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	s, err := uc.settings.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: no hay configuración activa", domain.ErrInvalidSettings)
	}
	return toSettingsResponse(s), nil
}

// Update modifica la fila activa. Las cotizaciones ya guardadas no cambian.
func (uc *SettingsUseCase) Update(ctx context.Context, actor entity.Actor, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var out *entity.PricingSettings
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		s, err := r.Settings.GetActive(ctx)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: no hay configuración activa", domain.ErrInvalidSettings)
		}
		applyPatch(s, in)
		if err := validateSettings(s); err != nil {
			return err
		}
		now := time.Now().UTC()
		s.UpdatedBy = actor.UserID
		s.UpdatedAt = now
		if err := r.Settings.Update(ctx, s); err != nil {
			return err
		}
		out = s
		return r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, entity.AuditSettingsUpdate, "pricing_settings", s.ID, nil, now))
	})
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(out), nil
}

// Create agrega una fila. Con Activate la deja vigente y desactiva la anterior en la misma transacción.
func (uc *SettingsUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateSettingsRequest) (*dto.SettingsResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	now := time.Now().UTC()
	s := &entity.PricingSettings{
		ID:                 uuid.New().String(),
		DiscountMultiplier: in.DiscountMultiplier,
		FreightPerMeter:    in.FreightPerMeter,
		CustomsNumerator:   in.CustomsNumerator,
		CustomsDenominator: in.CustomsDenominator,
		WarrantyRate:       in.WarrantyRate,
		CommissionFactor:   in.CommissionFactor,
		OfficeFactor:       in.OfficeFactor,
		ProfitFactor:       in.ProfitFactor,
		RoundingMode:       in.RoundingMode,
		RoundingStep:       in.RoundingStep,
		ExchangeRate:       in.ExchangeRate,
		UpdatedBy:          actor.UserID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if s.RoundingMode == "" {
		s.RoundingMode = pricing.RoundingNone
	}
	if err := validateSettings(s); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Settings.Create(ctx, s); err != nil {
			return err
		}
		if err := r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, entity.AuditSettingsCreate, "pricing_settings", s.ID, nil, now)); err != nil {
			return err
		}
		if !in.Activate {
			return nil
		}
		if err := r.Settings.Activate(ctx, s.ID); err != nil {
			return err
		}
		s.IsActive = true
		return r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, entity.AuditSettingsActivate, "pricing_settings", s.ID, nil, now))
	})
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

// Simulate ejecuta el motor con la configuración activa sin guardar nada.
func (uc *SettingsUseCase) Simulate(ctx context.Context, actor entity.Actor, in dto.SimulateRequest) (*pricing.Breakdown, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	s, err := uc.settings.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: no hay configuración activa", domain.ErrInvalidSettings)
	}
	cost := pricing.DeviceCost{FactoryPrice: in.FactoryPriceEUR, Length: in.LengthMeter, Weight: in.WeightUnit}
	if in.DeviceID != "" {
		d, err := uc.devices.GetByID(ctx, in.DeviceID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, domain.ErrNotFound
		}
		cost = pricing.DeviceCost{FactoryPrice: d.FactoryPrice, Length: d.Length, Weight: d.Weight}
	}
	b, err := pricing.Compute(cost, s.Coefficients())
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func applyPatch(s *entity.PricingSettings, in dto.UpdateSettingsRequest) {
	if in.DiscountMultiplier != nil {
		s.DiscountMultiplier = *in.DiscountMultiplier
	}
	if in.FreightPerMeter != nil {
		s.FreightPerMeter = *in.FreightPerMeter
	}
	if in.CustomsNumerator != nil {
		s.CustomsNumerator = *in.CustomsNumerator
	}
	if in.CustomsDenominator != nil {
		s.CustomsDenominator = *in.CustomsDenominator
	}
	if in.WarrantyRate != nil {
		s.WarrantyRate = *in.WarrantyRate
	}
	if in.CommissionFactor != nil {
		s.CommissionFactor = *in.CommissionFactor
	}
	if in.OfficeFactor != nil {
		s.OfficeFactor = *in.OfficeFactor
	}
	if in.ProfitFactor != nil {
		s.ProfitFactor = *in.ProfitFactor
	}
	if in.RoundingMode != nil {
		s.RoundingMode = *in.RoundingMode
	}
	if in.RoundingStep != nil {
		s.RoundingStep = *in.RoundingStep
	}
	if in.ExchangeRate != nil {
		s.ExchangeRate = *in.ExchangeRate
	}
}

func validateSettings(s *entity.PricingSettings) error {
	if err := s.Coefficients().Validate(); err != nil {
		return err
	}
	if !pricing.IsValidRoundingMode(s.RoundingMode) {
		return fmt.Errorf("%w: rounding_mode desconocido %q", domain.ErrValidation, s.RoundingMode)
	}
	if s.ExchangeRate.IsNegative() {
		return fmt.Errorf("%w: exchange_rate_irr_per_eur no puede ser negativo", domain.ErrValidation)
	}
	return nil
}

func toSettingsResponse(s *entity.PricingSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		ID:                 s.ID,
		IsActive:           s.IsActive,
		DiscountMultiplier: s.DiscountMultiplier,
		FreightPerMeter:    s.FreightPerMeter,
		CustomsNumerator:   s.CustomsNumerator,
		CustomsDenominator: s.CustomsDenominator,
		WarrantyRate:       s.WarrantyRate,
		CommissionFactor:   s.CommissionFactor,
		OfficeFactor:       s.OfficeFactor,
		ProfitFactor:       s.ProfitFactor,
		RoundingMode:       s.RoundingMode,
		RoundingStep:       s.RoundingStep,
		ExchangeRate:       s.ExchangeRate,
		UpdatedBy:          s.UpdatedBy,
		UpdatedAt:          s.UpdatedAt,
	}
}
