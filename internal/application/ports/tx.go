package ports

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Projects   repository.ProjectRepository
	History    repository.ProjectHistoryRepository
	Comments   repository.CommentRepository
	Inquiries  repository.InquiryRepository
	Devices    repository.DeviceRepository
	Categories repository.CategoryRepository
	Settings   repository.SettingsRepository
	Audit      repository.AuditRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error se hace rollback de todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
