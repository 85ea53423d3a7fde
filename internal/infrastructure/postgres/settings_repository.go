package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var (
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
	_ repository.AuditRepository    = (*AuditRepo)(nil)
)

// SettingsRepo implementación de SettingsRepository sobre PostgreSQL.
// El índice parcial uq_pricing_settings_active impide dos filas activas.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingsColumns = `id, is_active, discount_multiplier, freight_rate_per_meter_eur, customs_numerator,
	customs_denominator, warranty_rate, commission_factor, office_factor, profit_factor, rounding_mode,
	rounding_step, exchange_rate_irr_per_eur, updated_by, created_at, updated_at`

func scanSettings(row pgx.Row) (*entity.PricingSettings, error) {
	var s entity.PricingSettings
	err := row.Scan(
		&s.ID, &s.IsActive, &s.DiscountMultiplier, &s.FreightPerMeter, &s.CustomsNumerator,
		&s.CustomsDenominator, &s.WarrantyRate, &s.CommissionFactor, &s.OfficeFactor, &s.ProfitFactor, &s.RoundingMode,
		&s.RoundingStep, &s.ExchangeRate, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActive lee hasta dos filas activas para detectar una violación de integridad.
func (r *SettingsRepo) GetActive(ctx context.Context) (*entity.PricingSettings, error) {
	rows, err := r.q.Query(ctx, `SELECT `+settingsColumns+` FROM pricing_settings WHERE is_active LIMIT 2`)
	if err != nil {
		return nil, fmt.Errorf("get active settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.PricingSettings
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("scan settings: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, nil
	case 1:
		return list[0], nil
	default:
		return nil, fmt.Errorf("%w: más de una configuración activa", domain.ErrConflict)
	}
}

func (r *SettingsRepo) GetByID(ctx context.Context, id string) (*entity.PricingSettings, error) {
	s, err := scanSettings(r.q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM pricing_settings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepo) Create(ctx context.Context, s *entity.PricingSettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pricing_settings (`+settingsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.IsActive, s.DiscountMultiplier, s.FreightPerMeter, s.CustomsNumerator,
		s.CustomsDenominator, s.WarrantyRate, s.CommissionFactor, s.OfficeFactor, s.ProfitFactor, s.RoundingMode,
		s.RoundingStep, s.ExchangeRate, s.UpdatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) Update(ctx context.Context, s *entity.PricingSettings) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE pricing_settings SET is_active = $2, discount_multiplier = $3, freight_rate_per_meter_eur = $4,
			customs_numerator = $5, customs_denominator = $6, warranty_rate = $7, commission_factor = $8,
			office_factor = $9, profit_factor = $10, rounding_mode = $11, rounding_step = $12,
			exchange_rate_irr_per_eur = $13, updated_by = $14, updated_at = $15
		WHERE id = $1`,
		s.ID, s.IsActive, s.DiscountMultiplier, s.FreightPerMeter, s.CustomsNumerator,
		s.CustomsDenominator, s.WarrantyRate, s.CommissionFactor, s.OfficeFactor, s.ProfitFactor, s.RoundingMode,
		s.RoundingStep, s.ExchangeRate, s.UpdatedBy, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Activate en dos sentencias: el índice único parcial se verifica fila a fila.
func (r *SettingsRepo) Activate(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `UPDATE pricing_settings SET is_active = FALSE WHERE is_active AND id <> $1`, id); err != nil {
		return fmt.Errorf("deactivate settings: %w", err)
	}
	tag, err := r.q.Exec(ctx, `UPDATE pricing_settings SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("activate settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AuditRepo bitácora de auditoría sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Append(ctx context.Context, l *entity.AuditLog) error {
	detail := []byte("{}")
	if l.Detail != nil {
		b, err := json.Marshal(l.Detail)
		if err != nil {
			return fmt.Errorf("encode audit detail: %w", err)
		}
		detail = b
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, actor_user_id, action, entity, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.ActorUserID, l.Action, l.Entity, l.EntityID, detail, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListByEntity(ctx context.Context, entityName, entityID string) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, actor_user_id, action, entity, entity_id, detail, created_at
		FROM audit_logs WHERE entity = $1 AND entity_id = $2 ORDER BY created_at, id`, entityName, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var (
			l   entity.AuditLog
			raw []byte
		)
		if err := rows.Scan(&l.ID, &l.ActorUserID, &l.Action, &l.Entity, &l.EntityID, &raw, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if err := json.Unmarshal(raw, &l.Detail); err != nil {
			return nil, fmt.Errorf("decode audit detail: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
