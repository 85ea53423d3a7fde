package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameExists     = errors.New("el nombre de usuario ya está registrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrProjectNotApproved = errors.New("el proyecto no está aprobado para cotizar")
	ErrInvalidSettings    = errors.New("configuración de precios inválida")
)

// ErrInvalidTransition es un error de validación: el cambio de estado no está en la tabla de transiciones.
var ErrInvalidTransition = fmt.Errorf("%w: transición de estado no permitida", ErrValidation)
