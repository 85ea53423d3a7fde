package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository        = (*ProjectRepo)(nil)
	_ repository.ProjectHistoryRepository = (*HistoryRepo)(nil)
	_ repository.CommentRepository        = (*CommentRepo)(nil)
)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, created_by_user_id, assigned_sales_manager_id, project_name, employer_name, project_type,
	address_text, latitude, longitude, additional_info, status, approval_decision_by, approval_decision_at,
	approval_note, created_at, updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.CreatedByUserID, &p.AssignedSalesManagerID, &p.ProjectName, &p.EmployerName, &p.ProjectType,
		&p.AddressText, &p.Latitude, &p.Longitude, &p.AdditionalInfo, &p.Status, &p.ApprovalDecisionBy,
		&p.ApprovalDecisionAt, &p.ApprovalNote, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CreatedByUserID, p.AssignedSalesManagerID, p.ProjectName, p.EmployerName, p.ProjectType,
		p.AddressText, p.Latitude, p.Longitude, p.AdditionalInfo, p.Status, p.ApprovalDecisionBy,
		p.ApprovalDecisionAt, p.ApprovalNote, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene efecto dentro de una transacción.
func (r *ProjectRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProjectRepo) get(ctx context.Context, query, id string) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Update actualiza estado, decisión y datos editables.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET assigned_sales_manager_id = $2, project_name = $3, employer_name = $4, project_type = $5,
			address_text = $6, latitude = $7, longitude = $8, additional_info = $9, status = $10,
			approval_decision_by = $11, approval_decision_at = $12, approval_note = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.AssignedSalesManagerID, p.ProjectName, p.EmployerName, p.ProjectType,
		p.AddressText, p.Latitude, p.Longitude, p.AdditionalInfo, p.Status,
		p.ApprovalDecisionBy, p.ApprovalDecisionAt, p.ApprovalNote, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List proyectos filtrados, más recientes primero.
func (r *ProjectRepo) List(ctx context.Context, f entity.ProjectFilter) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM projects
		WHERE ($1 = '' OR created_by_user_id::text = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR project_type = $3)
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.CreatedBy, f.Status, f.ProjectType, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el proyecto. Las dependencias se borran antes en la misma transacción.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HistoryRepo historial de estados sobre PostgreSQL.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

func (r *HistoryRepo) Append(ctx context.Context, h *entity.ProjectStatusHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO project_status_history (id, project_id, from_status, to_status, changed_by, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.ProjectID, h.FromStatus, h.ToStatus, h.ChangedBy, h.Note, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert project history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectStatusHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, project_id, from_status, to_status, changed_by, note, created_at
		FROM project_status_history WHERE project_id = $1 ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project history: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectStatusHistory
	for rows.Next() {
		var h entity.ProjectStatusHistory
		if err := rows.Scan(&h.ID, &h.ProjectID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Note, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

func (r *HistoryRepo) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM project_status_history WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete project history: %w", err)
	}
	return nil
}

// CommentRepo comentarios de proyecto sobre PostgreSQL.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador.
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

const commentColumns = `id, project_id, author_user_id, author_role_snapshot, body, parent_comment_id, is_system, created_at`

func scanComment(row pgx.Row) (*entity.ProjectComment, error) {
	var c entity.ProjectComment
	if err := row.Scan(&c.ID, &c.ProjectID, &c.AuthorUserID, &c.AuthorRoleSnapshot, &c.Body, &c.ParentCommentID, &c.IsSystem, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *entity.ProjectComment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO project_comments (`+commentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.ProjectID, c.AuthorUserID, c.AuthorRoleSnapshot, c.Body, c.ParentCommentID, c.IsSystem, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id string) (*entity.ProjectComment, error) {
	c, err := scanComment(r.q.QueryRow(ctx, `SELECT `+commentColumns+` FROM project_comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

func (r *CommentRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectComment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+commentColumns+` FROM project_comments WHERE project_id = $1 ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectComment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// DeleteByProject desvincula las respuestas antes de borrar por la llave de parent_comment_id.
func (r *CommentRepo) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.q.Exec(ctx, `UPDATE project_comments SET parent_comment_id = NULL WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("detach comments: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM project_comments WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}
