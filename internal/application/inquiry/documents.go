package inquiry

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/application/project"
	"github.com/jhoicas/Cotizador-api/internal/application/visibility"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// CurrencyLabels etiquetas de moneda impresas en documentos.
type CurrencyLabels struct {
	Primary   string
	Secondary string
}

// DocumentUseCase exportaciones y PDF de cotizaciones. Todo sale ya proyectado por rol.
type DocumentUseCase struct {
	inquiries *InquiryUseCase
	exporter  ports.InquiryExporter
	pdf       ports.QuotePDFGenerator
	store     ports.DocumentStore // nil = sin archivo
	labels    CurrencyLabels
	urlTTL    time.Duration
}

// NewDocumentUseCase construye el caso de uso. store puede ser nil.
func NewDocumentUseCase(inquiries *InquiryUseCase, exporter ports.InquiryExporter, pdf ports.QuotePDFGenerator, store ports.DocumentStore, labels CurrencyLabels) *DocumentUseCase {
	return &DocumentUseCase{
		inquiries: inquiries,
		exporter:  exporter,
		pdf:       pdf,
		store:     store,
		labels:    labels,
		urlTTL:    15 * time.Minute,
	}
}

// ExportProject planilla con las cotizaciones del proyecto.
func (uc *DocumentUseCase) ExportProject(ctx context.Context, actor entity.Actor, projectID string) ([]byte, string, error) {
	p, err := project.LoadReadable(ctx, uc.inquiries.projects, actor, projectID)
	if err != nil {
		return nil, "", err
	}
	list, err := uc.inquiries.ListByProject(ctx, actor, projectID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportInquiries(*project.ToResponse(p), list,
		visibility.CanSee(actor.Role, "factory_pricelist_eur"),
		visibility.CanSee(actor.Role, "calculation_breakdown"))
	if err != nil {
		return nil, "", fmt.Errorf("export inquiries: %w", err)
	}
	return data, fmt.Sprintf("cotizaciones-%s.xlsx", p.ID), nil
}

// QuotePDF PDF de una cotización.
func (uc *DocumentUseCase) QuotePDF(ctx context.Context, actor entity.Actor, inquiryID string) ([]byte, error) {
	q, p, err := uc.inquiries.Get(ctx, actor, inquiryID)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.GenerateQuote(dto.QuoteDocument{
		Project:        *p,
		Inquiry:        *q,
		CurrencyLabel:  uc.labels.Primary,
		SecondaryLabel: uc.labels.Secondary,
		IssuedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate quote pdf: %w", err)
	}
	return data, nil
}

// ArchiveQuotePDF genera el PDF, lo guarda en el almacén de objetos y devuelve un enlace temporal.
func (uc *DocumentUseCase) ArchiveQuotePDF(ctx context.Context, actor entity.Actor, inquiryID string) (*dto.QuoteFileResponse, error) {
	if uc.store == nil {
		return nil, fmt.Errorf("%w: almacenamiento de documentos no configurado", domain.ErrConflict)
	}
	data, err := uc.QuotePDF(ctx, actor, inquiryID)
	if err != nil {
		return nil, err
	}
	// La vista depende del rol, así que el objeto también.
	key := fmt.Sprintf("quotes/%s/%s.pdf", inquiryID, actor.Role)
	if err := uc.store.Put(ctx, key, data, "application/pdf"); err != nil {
		return nil, fmt.Errorf("archive quote pdf: %w", err)
	}
	url, err := uc.store.PresignedURL(ctx, key, uc.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("presign quote pdf: %w", err)
	}
	return &dto.QuoteFileResponse{Key: key, URL: url}, nil
}
