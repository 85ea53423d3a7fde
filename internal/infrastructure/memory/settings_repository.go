package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var (
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
	_ repository.AuditRepository    = (*AuditRepo)(nil)
)

// SettingsRepo coeficientes en memoria. Como el índice parcial de PostgreSQL, rechaza dos filas activas.
type SettingsRepo struct{ a access }

func activeIDs(st *state) []string {
	var ids []string
	for id, s := range st.settings {
		if s.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r *SettingsRepo) GetActive(_ context.Context) (*entity.PricingSettings, error) {
	var out *entity.PricingSettings
	err := r.a.do(func(st *state) error {
		ids := activeIDs(st)
		switch len(ids) {
		case 0:
			return nil
		case 1:
			s := st.settings[ids[0]]
			out = &s
			return nil
		default:
			return domain.ErrConflict
		}
	})
	return out, err
}

func (r *SettingsRepo) GetByID(_ context.Context, id string) (*entity.PricingSettings, error) {
	var out *entity.PricingSettings
	err := r.a.do(func(st *state) error {
		if s, ok := st.settings[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SettingsRepo) Create(_ context.Context, s *entity.PricingSettings) error {
	return r.a.do(func(st *state) error {
		if s.IsActive && len(activeIDs(st)) > 0 {
			return domain.ErrConflict
		}
		st.settings[s.ID] = *s
		return nil
	})
}

func (r *SettingsRepo) Update(_ context.Context, s *entity.PricingSettings) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.settings[s.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, id := range activeIDs(st) {
			if s.IsActive && id != s.ID {
				return domain.ErrConflict
			}
		}
		st.settings[s.ID] = *s
		return nil
	})
}

func (r *SettingsRepo) Activate(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.settings[id]; !ok {
			return domain.ErrNotFound
		}
		for sid, s := range st.settings {
			s.IsActive = sid == id
			st.settings[sid] = s
		}
		return nil
	})
}

// AuditRepo bitácora en memoria.
type AuditRepo struct{ a access }

func (r *AuditRepo) Append(_ context.Context, l *entity.AuditLog) error {
	return r.a.do(func(st *state) error {
		st.audit = append(st.audit, *l)
		return nil
	})
}

func (r *AuditRepo) ListByEntity(_ context.Context, entityName, entityID string) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	err := r.a.do(func(st *state) error {
		for _, l := range st.audit {
			if l.Entity == entityName && l.EntityID == entityID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}
