package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ProjectCountsByStatus agrupa los proyectos por estado, opcionalmente solo los de un creador.
func (r *AnalyticsRepo) ProjectCountsByStatus(ctx context.Context, createdBy string) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM projects
	WHERE ($1 = '' OR created_by_user_id::text = $1)
	GROUP BY status
	ORDER BY status`

	rows, err := r.q.Query(ctx, query, createdBy)
	if err != nil {
		return nil, fmt.Errorf("analytics.ProjectCountsByStatus: %w", err)
	}
	defer rows.Close()

	var out []repository.StatusCount
	for rows.Next() {
		var row repository.StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.ProjectCountsByStatus scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
