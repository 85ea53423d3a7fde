// Package analytics contiene los casos de uso de solo lectura del tablero.
package analytics

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// DashboardUseCase resume los proyectos visibles para el actor.
//
// Aplica la misma guarda que el listado de proyectos: employee cuenta solo los propios,
// admin y sales_manager todos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// ProjectStats conteos por estado y los agregados del tablero.
func (uc *DashboardUseCase) ProjectStats(ctx context.Context, actor entity.Actor) (*dto.ProjectStatsResponse, error) {
	createdBy := ""
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleSalesManager:
	case entity.RoleEmployee:
		createdBy = actor.UserID
	default:
		return nil, domain.ErrForbidden
	}

	rows, err := uc.analyticsRepo.ProjectCountsByStatus(ctx, createdBy)
	if err != nil {
		return nil, err
	}

	out := &dto.ProjectStatsResponse{ByStatus: make(map[string]int, len(entity.ProjectStatuses))}
	for _, s := range entity.ProjectStatuses {
		out.ByStatus[s] = 0
	}
	for _, r := range rows {
		out.ByStatus[r.Status] += r.Count
		out.Total += r.Count
	}
	out.PendingApproval = out.ByStatus[entity.ProjectPendingApproval]
	out.Active = out.ByStatus[entity.ProjectApproved] + out.ByStatus[entity.ProjectInProgress]
	out.Rejected = out.ByStatus[entity.ProjectRejected]
	return out, nil
}
