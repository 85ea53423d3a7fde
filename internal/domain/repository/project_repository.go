package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project (DIP).
// Los métodos devuelven (nil, nil) cuando el registro no existe.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	List(ctx context.Context, filter entity.ProjectFilter) ([]*entity.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectHistoryRepository historial de estados (solo inserción).
type ProjectHistoryRepository interface {
	Append(ctx context.Context, h *entity.ProjectStatusHistory) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectStatusHistory, error)
	DeleteByProject(ctx context.Context, projectID string) error
}

// CommentRepository comentarios de proyecto.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.ProjectComment) error
	GetByID(ctx context.Context, id string) (*entity.ProjectComment, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectComment, error)
	DeleteByProject(ctx context.Context, projectID string) error
}
