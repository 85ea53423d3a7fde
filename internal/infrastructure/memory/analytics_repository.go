package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo conteos sobre el estado en memoria.
type AnalyticsRepo struct{ a access }

// Analytics devuelve el repositorio de consultas del tablero.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{access{store: s}}
}

func (r *AnalyticsRepo) ProjectCountsByStatus(_ context.Context, createdBy string) ([]repository.StatusCount, error) {
	counts := map[string]int{}
	err := r.a.do(func(st *state) error {
		for _, p := range st.projects {
			if createdBy != "" && p.CreatedByUserID != createdBy {
				continue
			}
			counts[p.Status]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}
