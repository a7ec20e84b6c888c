package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrValidation agrupa todos los errores de validación visibles al usuario.
	ErrValidation = errors.New("error de validación")

	ErrInputIncomplete  = errors.New("datos del periodo incompletos")
	ErrNoValidDocuments = errors.New("no se encontraron documentos válidos")
	ErrPeriodNotDraft   = errors.New("el libro no está en borrador")
	ErrNothingToExport  = errors.New("no hay líneas para exportar")
)

// ValidationError error de validación con su clase (uno de los sentinels Err*) y el mensaje para el usuario.
// errors.Is(err, ErrValidation) y errors.Is(err, Kind) son ambos verdaderos.
type ValidationError struct {
	Kind    error
	Message string
}

// NewValidationError construye el error con mensaje formateado.
func NewValidationError(kind error, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is permite comparar contra ErrValidation o contra la clase concreta.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || (e.Kind != nil && target == e.Kind)
}

// Unwrap expone la clase para errors.As/Is encadenados.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}
