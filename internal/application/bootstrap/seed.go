// Package bootstrap carga los datos iniciales: usuario admin, categorías,
// equipos de ejemplo y la configuración de precios vigente.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// Options qué sembrar.
type Options struct {
	AdminUsername string
	AdminPassword string
	AdminFullName string
	SampleDevices bool
}

// Report lo que efectivamente se creó. Lo ya existente se deja tal cual.
type Report struct {
	AdminCreated    bool
	AdminID         string
	Categories      int
	Devices         int
	SettingsCreated bool
}

type sampleDevice struct {
	model  string
	price  string
	length string
	weight string
}

var sampleCatalog = []struct {
	name, description string
	devices           []sampleDevice
}{
	{"Chiller", "Sistemas de refrigeración por compresión", []sampleDevice{
		{"CH-2000-X", "50000", "4.5", "2000"},
		{"CH-4000-Pro", "85000", "6.2", "3500"},
	}},
	{"VRF", "Sistemas de caudal de refrigerante variable", []sampleDevice{
		{"VRF-Outdoor-12HP", "12000", "1.2", "400"},
		{"VRF-Indoor-Cassette", "800", "0.8", "40"},
	}},
	{"Unidad manejadora de aire", "Unidades manejadoras y fan coils", []sampleDevice{
		{"AHU-10000-CFM", "15000", "3.0", "1200"},
		{"AHU-25000-CFM", "28000", "5.5", "2100"},
	}},
}

// DefaultSettings coeficientes iniciales.
func DefaultSettings(now time.Time, updatedBy string) *entity.PricingSettings {
	d := decimal.RequireFromString
	return &entity.PricingSettings{
		ID:                 uuid.New().String(),
		IsActive:           true,
		DiscountMultiplier: d("0.38"),
		FreightPerMeter:    d("1000"),
		CustomsNumerator:   d("350000"),
		CustomsDenominator: d("150000"),
		WarrantyRate:       d("0.05"),
		CommissionFactor:   d("0.95"),
		OfficeFactor:       d("0.95"),
		ProfitFactor:       d("0.65"),
		RoundingMode:       pricing.RoundingCeil,
		RoundingStep:       d("10"),
		ExchangeRate:       d("65000"),
		UpdatedBy:          updatedBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Seed es idempotente: sólo crea lo que falta.
func Seed(ctx context.Context, tx ports.TxRunner, users repository.UserRepository, opts Options) (*Report, error) {
	if opts.AdminUsername == "" || opts.AdminPassword == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña del admin son requeridos", domain.ErrValidation)
	}
	now := time.Now().UTC()
	rep := &Report{}

	admin, err := users.GetByUsername(ctx, opts.AdminUsername)
	if err != nil {
		return nil, fmt.Errorf("buscar admin: %w", err)
	}
	if admin == nil {
		hash, err := usecase.HashPassword(opts.AdminPassword)
		if err != nil {
			return nil, err
		}
		admin = &entity.User{
			ID:           uuid.New().String(),
			Username:     opts.AdminUsername,
			FullName:     opts.AdminFullName,
			PasswordHash: hash,
			Role:         entity.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("crear admin: %w", err)
		}
		rep.AdminCreated = true
	}
	rep.AdminID = admin.ID

	err = tx.Run(ctx, func(r ports.TxRepos) error {
		existing, err := r.Categories.List(ctx)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			for _, c := range sampleCatalog {
				cat := &entity.Category{ID: uuid.New().String(), Name: c.name, Description: c.description, CreatedAt: now, UpdatedAt: now}
				if err := r.Categories.Create(ctx, cat); err != nil {
					return fmt.Errorf("crear categoría %s: %w", c.name, err)
				}
				rep.Categories++
				if !opts.SampleDevices {
					continue
				}
				for _, sd := range c.devices {
					dev := &entity.Device{
						ID:           uuid.New().String(),
						CategoryID:   cat.ID,
						ModelName:    sd.model,
						FactoryPrice: decimal.RequireFromString(sd.price),
						Length:       decimal.RequireFromString(sd.length),
						Weight:       decimal.RequireFromString(sd.weight),
						IsActive:     true,
						CreatedAt:    now,
						UpdatedAt:    now,
					}
					if err := r.Devices.Create(ctx, dev); err != nil {
						return fmt.Errorf("crear equipo %s: %w", sd.model, err)
					}
					rep.Devices++
				}
			}
		}

		active, err := r.Settings.GetActive(ctx)
		if err != nil {
			return err
		}
		if active != nil {
			return nil
		}
		s := DefaultSettings(now, admin.ID)
		if err := r.Settings.Create(ctx, s); err != nil {
			return fmt.Errorf("crear configuración: %w", err)
		}
		rep.SettingsCreated = true
		return r.Audit.Append(ctx, entity.NewAuditLog(admin.ID, entity.AuditSettingsCreate, "pricing_settings", s.ID, nil, now))
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}
