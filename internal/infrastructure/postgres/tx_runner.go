package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos juego de repositorios sobre q (pool o transacción).
func NewRepos(q Querier) ports.TxRepos {
	return ports.TxRepos{
		Projects:   NewProjectRepository(q),
		History:    NewHistoryRepository(q),
		Comments:   NewCommentRepository(q),
		Inquiries:  NewInquiryRepository(q),
		Devices:    NewDeviceRepository(q),
		Categories: NewCategoryRepository(q),
		Settings:   NewSettingsRepository(q),
		Audit:      NewAuditRepository(q),
	}
}
