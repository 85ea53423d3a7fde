package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
)

// TokenBlacklist tokens JWT revocados por logout hasta su expiración.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// QuotePDFGenerator genera el PDF de una cotización ya proyectada según el rol.
type QuotePDFGenerator interface {
	GenerateQuote(doc dto.QuoteDocument) ([]byte, error)
}

// InquiryExporter genera la planilla de cotizaciones de un proyecto.
type InquiryExporter interface {
	ExportInquiries(project dto.ProjectResponse, inquiries []dto.InquiryResponse, includeCost, includeBreakdown bool) ([]byte, error)
}

// DocumentStore almacén de objetos para archivar documentos generados.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
