package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// InquiryRepository define el puerto de persistencia para ProjectInquiry (DIP).
// No existe un Update general: el snapshot de precio es inmutable.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.ProjectInquiry) error
	GetByID(ctx context.Context, id string) (*entity.ProjectInquiry, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ProjectInquiry, error)
	// UpdateDecision modifica solo status, admin_decision_at y admin_decision_by.
	UpdateDecision(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectInquiry, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.ProjectInquiry, error)
	DeleteByProject(ctx context.Context, projectID string) error
}
