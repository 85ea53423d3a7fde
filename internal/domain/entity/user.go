package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleSalesManager = "sales_manager"
	RoleEmployee     = "employee"
)

// IsValidRole informa si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSalesManager, RoleEmployee:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, sales_manager, employee
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor es el usuario ya autenticado que ejecuta una operación.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin informa si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsManager informa si el actor puede decidir sobre proyectos (admin o sales_manager).
func (a Actor) IsManager() bool { return a.Role == RoleAdmin || a.Role == RoleSalesManager }
