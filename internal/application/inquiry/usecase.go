// Package inquiry implementa la cotización de equipos para proyectos aprobados y la decisión
// del administrador sobre cada cotización.
package inquiry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/project"
	"github.com/jhoicas/Cotizador-api/internal/application/visibility"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// InquiryUseCase casos de uso de cotizaciones.
type InquiryUseCase struct {
	tx        ports.TxRunner
	projects  repository.ProjectRepository
	inquiries repository.InquiryRepository
	now       func() time.Time
}

// NewInquiryUseCase construye el caso de uso.
func NewInquiryUseCase(tx ports.TxRunner, projects repository.ProjectRepository, inquiries repository.InquiryRepository) *InquiryUseCase {
	return &InquiryUseCase{
		tx:        tx,
		projects:  projects,
		inquiries: inquiries,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Quote calcula el precio de un equipo para el proyecto y guarda una cotización pending
// con el snapshot del cálculo. Un empleado solo cotiza sus proyectos aprobados o en curso;
// admin y sales_manager no tienen esa restricción.
func (uc *InquiryUseCase) Quote(ctx context.Context, actor entity.Actor, projectID string, in dto.CreateInquiryRequest) (*dto.InquiryResponse, error) {
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrValidation)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.DeviceID == "" {
		return nil, fmt.Errorf("%w: device_id es obligatorio", domain.ErrValidation)
	}

	var q *entity.ProjectInquiry
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Projects.GetByIDForUpdate(ctx, projectID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: proyecto", domain.ErrNotFound)
		}
		device, err := r.Devices.GetByID(ctx, in.DeviceID)
		if err != nil {
			return err
		}
		if device == nil || !device.IsActive {
			return fmt.Errorf("%w: equipo", domain.ErrNotFound)
		}

		switch actor.Role {
		case entity.RoleAdmin, entity.RoleSalesManager:
		case entity.RoleEmployee:
			if p.CreatedByUserID != actor.UserID {
				return domain.ErrForbidden
			}
			if !entity.IsQuotableStatus(p.Status) {
				return fmt.Errorf("%w (estado %s)", domain.ErrProjectNotApproved, p.Status)
			}
		default:
			return domain.ErrForbidden
		}

		categoryName := ""
		if c, err := r.Categories.GetByID(ctx, device.CategoryID); err != nil {
			return err
		} else if c != nil {
			categoryName = c.Name
		}

		settings, err := r.Settings.GetActive(ctx)
		if err != nil {
			return err
		}
		if settings == nil {
			return fmt.Errorf("%w: no hay configuración activa", domain.ErrInvalidSettings)
		}
		coeffs := settings.Coefficients()

		b, err := pricing.Compute(pricing.DeviceCost{
			FactoryPrice: device.FactoryPrice,
			Length:       device.Length,
			Weight:       device.Weight,
		}, coeffs)
		if err != nil {
			return err
		}

		now := uc.now()
		q = &entity.ProjectInquiry{
			ID:                   uuid.New().String(),
			ProjectID:            p.ID,
			RequestedByUserID:    actor.UserID,
			DeviceID:             device.ID,
			CategoryID:           device.CategoryID,
			DeviceModel:          device.ModelName,
			CategoryName:         categoryName,
			Quantity:             in.Quantity,
			Status:               entity.InquiryPending,
			SellPriceEURSnapshot: b.FinalSellPrice,
			SellPriceIRRSnapshot: b.SellPriceIRR,
			CalculationBreakdown: b,
			CreatedAt:            now,
		}
		if err := r.Inquiries.Create(ctx, q); err != nil {
			return err
		}
		return r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, entity.AuditInquiryCreate, "project_inquiry", q.ID,
			map[string]any{
				"project_id":     p.ID,
				"device_id":      device.ID,
				"quantity":       q.Quantity,
				"sell_price_eur": b.FinalSellPrice.String(),
				"settings_id":    settings.ID,
			}, now))
	})
	if err != nil {
		return nil, err
	}
	resp := visibility.Inquiry(actor.Role, q)
	return &resp, nil
}

// Decide aprueba o rechaza una cotización. Solo admin. El snapshot de precio no cambia
// y una cotización ya decidida puede volver a decidirse.
func (uc *InquiryUseCase) Decide(ctx context.Context, actor entity.Actor, inquiryID string, approve bool) (*dto.InquiryResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo admin decide cotizaciones", domain.ErrForbidden)
	}
	status := entity.InquiryRejected
	if approve {
		status = entity.InquiryApproved
	}
	var out *entity.ProjectInquiry
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		q, err := r.Inquiries.GetByIDForUpdate(ctx, inquiryID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if err := r.Inquiries.UpdateDecision(ctx, q.ID, status, actor.UserID, now); err != nil {
			return err
		}
		if err := r.Audit.Append(ctx, entity.NewAuditLog(actor.UserID, entity.AuditInquiryDecide, "project_inquiry", q.ID,
			map[string]any{"from": q.Status, "to": status}, now)); err != nil {
			return err
		}
		out, err = r.Inquiries.GetByID(ctx, q.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := visibility.Inquiry(actor.Role, out)
	return &resp, nil
}

// ListByProject cotizaciones de un proyecto que el actor puede leer.
func (uc *InquiryUseCase) ListByProject(ctx context.Context, actor entity.Actor, projectID string) ([]dto.InquiryResponse, error) {
	if _, err := project.LoadReadable(ctx, uc.projects, actor, projectID); err != nil {
		return nil, err
	}
	list, err := uc.inquiries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return visibility.Inquiries(actor.Role, list), nil
}

// ListPending cotizaciones pendientes de decisión. Solo admin.
func (uc *InquiryUseCase) ListPending(ctx context.Context, actor entity.Actor, page dto.PageRequest) ([]dto.InquiryResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.inquiries.ListByStatus(ctx, entity.InquiryPending, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return visibility.Inquiries(actor.Role, list), nil
}

// Get una cotización con su proyecto, ambos ya verificados para el actor.
func (uc *InquiryUseCase) Get(ctx context.Context, actor entity.Actor, inquiryID string) (*dto.InquiryResponse, *dto.ProjectResponse, error) {
	q, err := uc.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := project.LoadReadable(ctx, uc.projects, actor, q.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	resp := visibility.Inquiry(actor.Role, q)
	return &resp, project.ToResponse(p), nil
}
