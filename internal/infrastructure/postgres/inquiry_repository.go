package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.InquiryRepository = (*InquiryRepo)(nil)

// InquiryRepo implementación de InquiryRepository sobre PostgreSQL.
// calculation_breakdown es JSONB y nunca se actualiza.
type InquiryRepo struct {
	q Querier
}

// NewInquiryRepository construye el adaptador.
func NewInquiryRepository(q Querier) *InquiryRepo {
	return &InquiryRepo{q: q}
}

const inquiryColumns = `id, project_id, requested_by_user_id, device_id, category_id, device_model, category_name,
	quantity, status, admin_decision_at, admin_decision_by, sell_price_eur_snapshot, sell_price_irr_snapshot,
	calculation_breakdown, created_at`

func scanInquiry(row pgx.Row) (*entity.ProjectInquiry, error) {
	var (
		q   entity.ProjectInquiry
		raw []byte
	)
	err := row.Scan(
		&q.ID, &q.ProjectID, &q.RequestedByUserID, &q.DeviceID, &q.CategoryID, &q.DeviceModel, &q.CategoryName,
		&q.Quantity, &q.Status, &q.AdminDecisionAt, &q.AdminDecisionBy, &q.SellPriceEURSnapshot, &q.SellPriceIRRSnapshot,
		&raw, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &q.CalculationBreakdown); err != nil {
		return nil, fmt.Errorf("decode calculation_breakdown: %w", err)
	}
	return &q, nil
}

// Create persiste la cotización con su snapshot.
func (r *InquiryRepo) Create(ctx context.Context, q *entity.ProjectInquiry) error {
	raw, err := json.Marshal(q.CalculationBreakdown)
	if err != nil {
		return fmt.Errorf("encode calculation_breakdown: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO project_inquiries (`+inquiryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		q.ID, q.ProjectID, q.RequestedByUserID, q.DeviceID, q.CategoryID, q.DeviceModel, q.CategoryName,
		q.Quantity, q.Status, q.AdminDecisionAt, q.AdminDecisionBy, q.SellPriceEURSnapshot, q.SellPriceIRRSnapshot,
		raw, q.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

func (r *InquiryRepo) GetByID(ctx context.Context, id string) (*entity.ProjectInquiry, error) {
	return r.get(ctx, `SELECT `+inquiryColumns+` FROM project_inquiries WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
func (r *InquiryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ProjectInquiry, error) {
	return r.get(ctx, `SELECT `+inquiryColumns+` FROM project_inquiries WHERE id = $1 FOR UPDATE`, id)
}

func (r *InquiryRepo) get(ctx context.Context, query, id string) (*entity.ProjectInquiry, error) {
	q, err := scanInquiry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return q, nil
}

// UpdateDecision solo toca las columnas de decisión.
func (r *InquiryRepo) UpdateDecision(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE project_inquiries SET status = $2, admin_decision_by = $3, admin_decision_at = $4 WHERE id = $1`,
		id, status, decidedBy, decidedAt)
	if err != nil {
		return fmt.Errorf("update inquiry decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InquiryRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectInquiry, error) {
	return r.list(ctx, `
		SELECT `+inquiryColumns+` FROM project_inquiries WHERE project_id = $1 ORDER BY created_at, id`, projectID)
}

func (r *InquiryRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.ProjectInquiry, error) {
	return r.list(ctx, `
		SELECT `+inquiryColumns+` FROM project_inquiries WHERE status = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		status, limitArg(limit), offset)
}

func (r *InquiryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ProjectInquiry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectInquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

func (r *InquiryRepo) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM project_inquiries WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete inquiries: %w", err)
	}
	return nil
}
