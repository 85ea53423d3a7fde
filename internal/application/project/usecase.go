// Package project implementa el ciclo de vida de proyectos: alta, decisión, cambios de estado,
// lectura con guardas por rol, borrado en cascada y comentarios.
package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/visibility"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// ProjectUseCase casos de uso de proyectos.
type ProjectUseCase struct {
	tx        ports.TxRunner
	projects  repository.ProjectRepository
	history   repository.ProjectHistoryRepository
	comments  repository.CommentRepository
	inquiries repository.InquiryRepository
	now       func() time.Time
}

// NewProjectUseCase construye el caso de uso. Los repositorios se usan solo fuera de transacción.
func NewProjectUseCase(
	tx ports.TxRunner,
	projects repository.ProjectRepository,
	history repository.ProjectHistoryRepository,
	comments repository.CommentRepository,
	inquiries repository.InquiryRepository,
) *ProjectUseCase {
	return &ProjectUseCase{
		tx:        tx,
		projects:  projects,
		history:   history,
		comments:  comments,
		inquiries: inquiries,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create registra un proyecto en pending_approval. Solo employee.
func (uc *ProjectUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if actor.Role != entity.RoleEmployee {
		return nil, fmt.Errorf("%w: solo un empleado puede registrar proyectos", domain.ErrForbidden)
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Project{
		ID:                     uuid.New().String(),
		CreatedByUserID:        actor.UserID,
		AssignedSalesManagerID: in.AssignedSalesManagerID,
		ProjectName:            strings.TrimSpace(in.ProjectName),
		EmployerName:           strings.TrimSpace(in.EmployerName),
		ProjectType:            strings.TrimSpace(in.ProjectType),
		AddressText:            strings.TrimSpace(in.AddressText),
		Latitude:               *in.Latitude,
		Longitude:              *in.Longitude,
		AdditionalInfo:         strings.TrimSpace(in.AdditionalInfo),
		Status:                 entity.ProjectPendingApproval,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Projects.Create(ctx, p); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &entity.ProjectStatusHistory{
			ID:        uuid.New().String(),
			ProjectID: p.ID,
			ToStatus:  entity.ProjectPendingApproval,
			ChangedBy: actor.UserID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, entity.AuditProjectCreate, "project", p.ID,
			map[string]any{"project_name": p.ProjectName}, now))
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(p), nil
}

func validateCreate(in dto.CreateProjectRequest) error {
	required := []struct{ name, value string }{
		{"project_name", in.ProjectName},
		{"employer_name", in.EmployerName},
		{"project_type", in.ProjectType},
		{"address_text", in.AddressText},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s es obligatorio", domain.ErrValidation, f.name)
		}
	}
	if in.Latitude == nil || in.Longitude == nil {
		return fmt.Errorf("%w: latitude y longitude son obligatorios", domain.ErrValidation)
	}
	if *in.Latitude < -90 || *in.Latitude > 90 {
		return fmt.Errorf("%w: latitude fuera de rango", domain.ErrValidation)
	}
	if *in.Longitude < -180 || *in.Longitude > 180 {
		return fmt.Errorf("%w: longitude fuera de rango", domain.ErrValidation)
	}
	return nil
}

// Decide aprueba o rechaza un proyecto pendiente. Rechazar exige nota.
func (uc *ProjectUseCase) Decide(ctx context.Context, actor entity.Actor, id string, approve bool, note string) (*dto.ProjectResponse, error) {
	target := entity.ProjectRejected
	if approve {
		target = entity.ProjectApproved
	}
	return uc.transition(ctx, actor, id, target, note, entity.AuditProjectDecide)
}

// ChangeStatus aplica cualquier otra transición de la tabla.
func (uc *ProjectUseCase) ChangeStatus(ctx context.Context, actor entity.Actor, id, status, note string) (*dto.ProjectResponse, error) {
	if !entity.IsValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrValidation, status)
	}
	return uc.transition(ctx, actor, id, status, note, entity.AuditProjectStatus)
}

func (uc *ProjectUseCase) transition(ctx context.Context, actor entity.Actor, id, target, note, action string) (*dto.ProjectResponse, error) {
	if !actor.IsManager() {
		return nil, fmt.Errorf("%w: solo admin o sales_manager cambian el estado", domain.ErrForbidden)
	}
	note = strings.TrimSpace(note)
	if target == entity.ProjectRejected && note == "" {
		return nil, fmt.Errorf("%w: el rechazo requiere una nota", domain.ErrValidation)
	}

	var out *entity.Project
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		from := p.Status
		if !entity.CanTransition(from, target) {
			return fmt.Errorf("%w (%s -> %s)", domain.ErrInvalidTransition, from, target)
		}
		now := uc.now()
		p.Status = target
		p.UpdatedAt = now
		if from == entity.ProjectPendingApproval {
			by := actor.UserID
			p.ApprovalDecisionBy = &by
			p.ApprovalDecisionAt = &now
			p.ApprovalNote = note
		}
		if err := r.Projects.Update(ctx, p); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &entity.ProjectStatusHistory{
			ID:         uuid.New().String(),
			ProjectID:  p.ID,
			FromStatus: from,
			ToStatus:   target,
			ChangedBy:  actor.UserID,
			Note:       note,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		if err := r.Comments.Create(ctx, &entity.ProjectComment{
			ID:                 uuid.New().String(),
			ProjectID:          p.ID,
			AuthorUserID:       actor.UserID,
			AuthorRoleSnapshot: actor.Role,
			Body:               systemComment(from, target, note),
			IsSystem:           true,
			CreatedAt:          now,
		}); err != nil {
			return err
		}
		out = p
		return r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, action, "project", p.ID,
			map[string]any{"from": from, "to": target, "note": note}, now))
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(out), nil
}

func systemComment(from, to, note string) string {
	msg := fmt.Sprintf("Estado cambiado de %s a %s", from, to)
	if note != "" {
		msg += ": " + note
	}
	return msg
}

// Get devuelve un proyecto aplicando la guarda de lectura.
func (uc *ProjectUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.ProjectResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(p), nil
}

// load aplica LoadReadable con el repositorio del caso de uso.
func (uc *ProjectUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Project, error) {
	return LoadReadable(ctx, uc.projects, actor, id)
}

// LoadReadable obtiene un proyecto: ErrNotFound si no existe, ErrForbidden si el actor no puede leerlo.
func LoadReadable(ctx context.Context, projects repository.ProjectRepository, actor entity.Actor, id string) (*entity.Project, error) {
	p, err := projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.VisibleTo(actor) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Detail proyecto con historial, comentarios y cotizaciones proyectadas para el rol.
func (uc *ProjectUseCase) Detail(ctx context.Context, actor entity.Actor, id string) (*dto.ProjectDetailResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	history, err := uc.history.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := uc.comments.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	inquiries, err := uc.inquiries.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.ProjectDetailResponse{
		Project:   *ToResponse(p),
		History:   make([]dto.HistoryResponse, 0, len(history)),
		Comments:  make([]dto.CommentResponse, 0, len(comments)),
		Inquiries: visibility.Inquiries(actor.Role, inquiries),
	}
	for _, h := range history {
		out.History = append(out.History, dto.HistoryResponse{
			ID:         h.ID,
			FromStatus: h.FromStatus,
			ToStatus:   h.ToStatus,
			ChangedBy:  h.ChangedBy,
			Note:       h.Note,
			CreatedAt:  h.CreatedAt,
		})
	}
	for _, c := range comments {
		out.Comments = append(out.Comments, toCommentResponse(c))
	}
	return out, nil
}

// List proyectos visibles para el actor.
func (uc *ProjectUseCase) List(ctx context.Context, actor entity.Actor, in dto.ProjectListRequest) (*dto.ProjectListResponse, error) {
	in.DefaultPage()
	filter := entity.ProjectFilter{
		Status:      in.Status,
		ProjectType: in.ProjectType,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleSalesManager:
	case entity.RoleEmployee:
		filter.CreatedBy = actor.UserID
	default:
		return nil, domain.ErrForbidden
	}
	list, err := uc.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ProjectListResponse{
		Items: make([]dto.ProjectResponse, 0, len(list)),
		Page:  in.PageRequest.Response(),
	}
	for _, p := range list {
		out.Items = append(out.Items, *ToResponse(p))
	}
	return out, nil
}

// Delete borra el proyecto con sus cotizaciones, comentarios e historial. Solo admin.
func (uc *ProjectUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: solo admin puede eliminar proyectos", domain.ErrForbidden)
	}
	return uc.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := r.Inquiries.DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := r.Comments.DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := r.History.DeleteByProject(ctx, id); err != nil {
			return err
		}
		if err := r.Projects.Delete(ctx, id); err != nil {
			return err
		}
		return r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, entity.AuditProjectDelete, "project", id,
			map[string]any{"project_name": p.ProjectName}, uc.now()))
	})
}

// AddComment agrega un comentario; el padre, si viene, debe ser del mismo proyecto.
func (uc *ProjectUseCase) AddComment(ctx context.Context, actor entity.Actor, projectID string, in dto.CommentRequest) (*dto.CommentResponse, error) {
	if _, err := uc.load(ctx, actor, projectID); err != nil {
		return nil, err
	}
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: el comentario está vacío", domain.ErrValidation)
	}
	if in.ParentCommentID != nil && *in.ParentCommentID != "" {
		parent, err := uc.comments.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ProjectID != projectID {
			return nil, fmt.Errorf("%w: el comentario padre no pertenece al proyecto", domain.ErrValidation)
		}
	} else {
		in.ParentCommentID = nil
	}
	c := &entity.ProjectComment{
		ID:                 uuid.New().String(),
		ProjectID:          projectID,
		AuthorUserID:       actor.UserID,
		AuthorRoleSnapshot: actor.Role,
		Body:               body,
		ParentCommentID:    in.ParentCommentID,
		CreatedAt:          uc.now(),
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCommentResponse(c)
	return &resp, nil
}

// ListComments comentarios del proyecto en orden de creación.
func (uc *ProjectUseCase) ListComments(ctx context.Context, actor entity.Actor, projectID string) ([]dto.CommentResponse, error) {
	if _, err := uc.load(ctx, actor, projectID); err != nil {
		return nil, err
	}
	list, err := uc.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCommentResponse(c))
	}
	return out, nil
}

// ToResponse mapea la entidad a su DTO.
func ToResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:                     p.ID,
		CreatedByUserID:        p.CreatedByUserID,
		AssignedSalesManagerID: p.AssignedSalesManagerID,
		ProjectName:            p.ProjectName,
		EmployerName:           p.EmployerName,
		ProjectType:            p.ProjectType,
		AddressText:            p.AddressText,
		Latitude:               p.Latitude,
		Longitude:              p.Longitude,
		AdditionalInfo:         p.AdditionalInfo,
		Status:                 p.Status,
		ApprovalDecisionBy:     p.ApprovalDecisionBy,
		ApprovalDecisionAt:     p.ApprovalDecisionAt,
		ApprovalNote:           p.ApprovalNote,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func toCommentResponse(c *entity.ProjectComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:                 c.ID,
		ProjectID:          c.ProjectID,
		AuthorUserID:       c.AuthorUserID,
		AuthorRoleSnapshot: c.AuthorRoleSnapshot,
		Body:               c.Body,
		ParentCommentID:    c.ParentCommentID,
		IsSystem:           c.IsSystem,
		CreatedAt:          c.CreatedAt,
	}
}
