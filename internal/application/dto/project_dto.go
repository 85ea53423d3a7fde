package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// CreateProjectRequest alta de proyecto (solo employee).
type CreateProjectRequest struct {
	ProjectName            string   `json:"project_name"`
	EmployerName           string   `json:"employer_name"`
	ProjectType            string   `json:"project_type"`
	AddressText            string   `json:"address_text"`
	Latitude               *float64 `json:"latitude"`
	Longitude              *float64 `json:"longitude"`
	AdditionalInfo         string   `json:"additional_info"`
	AssignedSalesManagerID *string  `json:"assigned_sales_manager_id"`
}

// DecisionRequest nota de aprobación o rechazo.
type DecisionRequest struct {
	Note string `json:"note"`
}

// StatusChangeRequest transición manual de estado.
type StatusChangeRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// ProjectListRequest filtros del listado.
type ProjectListRequest struct {
	Status      string `query:"status"`
	ProjectType string `query:"project_type"`
	PageRequest
}

// ProjectResponse salida de proyecto.
type ProjectResponse struct {
	ID                     string     `json:"id"`
	CreatedByUserID        string     `json:"created_by_user_id"`
	AssignedSalesManagerID *string    `json:"assigned_sales_manager_id,omitempty"`
	ProjectName            string     `json:"project_name"`
	EmployerName           string     `json:"employer_name"`
	ProjectType            string     `json:"project_type"`
	AddressText            string     `json:"address_text"`
	Latitude               float64    `json:"latitude"`
	Longitude              float64    `json:"longitude"`
	AdditionalInfo         string     `json:"additional_info,omitempty"`
	Status                 string     `json:"status"`
	ApprovalDecisionBy     *string    `json:"approval_decision_by,omitempty"`
	ApprovalDecisionAt     *time.Time `json:"approval_decision_at,omitempty"`
	ApprovalNote           string     `json:"approval_note,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// ProjectListResponse página de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// HistoryResponse entrada del historial de estados.
type HistoryResponse struct {
	ID         string    `json:"id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentRequest nuevo comentario; ParentCommentID debe pertenecer al mismo proyecto.
type CommentRequest struct {
	Body            string  `json:"body"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// CommentResponse salida de comentario.
type CommentResponse struct {
	ID                 string    `json:"id"`
	ProjectID          string    `json:"project_id"`
	AuthorUserID       string    `json:"author_user_id"`
	AuthorRoleSnapshot string    `json:"author_role_snapshot"`
	Body               string    `json:"body"`
	ParentCommentID    *string   `json:"parent_comment_id,omitempty"`
	IsSystem           bool      `json:"is_system"`
	CreatedAt          time.Time `json:"created_at"`
}

// ProjectDetailResponse proyecto con historial, comentarios y cotizaciones proyectadas.
type ProjectDetailResponse struct {
	Project   ProjectResponse   `json:"project"`
	History   []HistoryResponse `json:"history"`
	Comments  []CommentResponse `json:"comments"`
	Inquiries []InquiryResponse `json:"inquiries"`
}

// CreateInquiryRequest solicitud de cotización.
type CreateInquiryRequest struct {
	DeviceID string `json:"device_id"`
	Quantity int    `json:"quantity"`
}

// InquiryResponse vista de una cotización. Los campos puntero de costo y el desglose
// solo se llenan para los roles que pueden verlos.
type InquiryResponse struct {
	ID                   string             `json:"id"`
	ProjectID            string             `json:"project_id"`
	RequestedByUserID    string             `json:"requested_by_user_id"`
	DeviceID             string             `json:"device_id"`
	CategoryID           string             `json:"category_id"`
	CategoryName         string             `json:"category_name"`
	DeviceModel          string             `json:"model_name"`
	Quantity             int                `json:"quantity"`
	Status               string             `json:"status"`
	AdminDecisionAt      *time.Time         `json:"admin_decision_at,omitempty"`
	AdminDecisionBy      *string            `json:"admin_decision_by,omitempty"`
	SellPriceEUR         decimal.Decimal    `json:"sell_price_eur"`
	SellPriceIRR         *decimal.Decimal   `json:"sell_price_irr,omitempty"`
	FactoryPriceEUR      *decimal.Decimal   `json:"factory_pricelist_eur,omitempty"`
	LengthMeter          *decimal.Decimal   `json:"length_meter,omitempty"`
	WeightUnit           *decimal.Decimal   `json:"weight_unit,omitempty"`
	CalculationBreakdown *pricing.Breakdown `json:"calculation_breakdown,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
}

// QuoteDocument datos para el PDF de cotización.
type QuoteDocument struct {
	Project        ProjectResponse
	Inquiry        InquiryResponse
	CurrencyLabel  string
	SecondaryLabel string
	IssuedAt       time.Time
}

// QuoteFileResponse enlace al PDF archivado.
type QuoteFileResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
