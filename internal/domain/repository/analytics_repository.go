package repository

import "context"

// StatusCount cantidad de proyectos en un estado.
type StatusCount struct {
	Status string
	Count  int
}

// AnalyticsRepository consultas de solo lectura para el tablero.
type AnalyticsRepository interface {
	// ProjectCountsByStatus cuenta proyectos agrupados por estado.
	// createdBy vacío cuenta todos; los estados sin proyectos no aparecen.
	ProjectCountsByStatus(ctx context.Context, createdBy string) ([]StatusCount, error)
}
