package entity

import (
	"slices"
	"time"
)

// Estados de Project.
const (
	ProjectPendingApproval = "pending_approval"
	ProjectApproved        = "approved"
	ProjectRejected        = "rejected"
	ProjectInProgress      = "in_progress"
	ProjectQuoted          = "quoted"
	ProjectWon             = "won"
	ProjectLost            = "lost"
	ProjectOnHold          = "on_hold"
)

// projectTransitions tabla de adyacencia del ciclo de vida. Estados sin entrada son terminales.
var projectTransitions = map[string][]string{
	ProjectPendingApproval: {ProjectApproved, ProjectRejected},
	ProjectApproved:        {ProjectInProgress, ProjectQuoted, ProjectOnHold, ProjectLost},
	ProjectInProgress:      {ProjectQuoted, ProjectOnHold, ProjectLost},
	ProjectQuoted:          {ProjectWon, ProjectLost, ProjectOnHold, ProjectInProgress},
	ProjectOnHold:          {ProjectInProgress, ProjectQuoted, ProjectLost},
}

// ProjectStatuses todos los estados en orden del ciclo de vida.
var ProjectStatuses = []string{
	ProjectPendingApproval, ProjectApproved, ProjectRejected, ProjectInProgress,
	ProjectQuoted, ProjectWon, ProjectLost, ProjectOnHold,
}

// IsValidProjectStatus informa si s es un estado conocido.
func IsValidProjectStatus(s string) bool {
	return slices.Contains(ProjectStatuses, s)
}

// CanTransition informa si from -> to está en la tabla.
func CanTransition(from, to string) bool {
	for _, s := range projectTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsQuotableStatus estados en los que un empleado puede pedir cotización.
func IsQuotableStatus(s string) bool {
	return s == ProjectApproved || s == ProjectInProgress || s == ProjectQuoted
}

// Project representa una oportunidad de venta registrada por un empleado.
type Project struct {
	ID                     string
	CreatedByUserID        string
	AssignedSalesManagerID *string
	ProjectName            string
	EmployerName           string
	ProjectType            string
	AddressText            string
	Latitude               float64
	Longitude              float64
	AdditionalInfo         string
	Status                 string
	ApprovalDecisionBy     *string
	ApprovalDecisionAt     *time.Time
	ApprovalNote           string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ProjectFilter filtros para listar proyectos.
type ProjectFilter struct {
	CreatedBy   string // vacío = todos
	Status      string
	ProjectType string
	Limit       int
	Offset      int
}

// ProjectStatusHistory registro de cada cambio de estado (FromStatus vacío en la creación).
type ProjectStatusHistory struct {
	ID         string
	ProjectID  string
	FromStatus string
	ToStatus   string
	ChangedBy  string
	Note       string
	CreatedAt  time.Time
}

// ProjectComment comentario de un proyecto; IsSystem marca los generados por el workflow.
type ProjectComment struct {
	ID                 string
	ProjectID          string
	AuthorUserID       string
	AuthorRoleSnapshot string
	Body               string
	ParentCommentID    *string
	IsSystem           bool
	CreatedAt          time.Time
}

// VisibleTo informa si el actor puede leer el proyecto: admin y sales_manager todos, employee solo los propios.
func (p *Project) VisibleTo(a Actor) bool {
	switch a.Role {
	case RoleAdmin, RoleSalesManager:
		return true
	case RoleEmployee:
		return p.CreatedByUserID == a.UserID
	}
	return false
}
