package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los structs tipados de abajo
// hacen Unwrap() a estos centinelas para clasificar con errors.Is en los handlers.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrValidation          = errors.New("entrada inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidState        = errors.New("estado no permite la operación")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia")
	ErrDuplicate           = errors.New("recurso duplicado")
)

// NotFoundError identifica qué recurso no existe (producto, traslado, orden...).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// FieldError detalle de validación a nivel de campo o línea.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores de campo de una operación. Para operaciones
// multi-línea la validación es completa y previa: se reportan todas las líneas
// ofensoras y no se aplica ninguna mutación.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validación: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validación: %d campos inválidos", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError crea un error de validación de un solo campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add acumula un error de campo; devuelve el mismo puntero para encadenar.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors indica si se acumuló al menos un campo inválido.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// InsufficientStockError la cantidad solicitada supera el stock disponible en la
// ubicación origen. Incluye producto y disponible para que el caller sepa
// exactamente qué línea falló.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Location    Location
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q en %s: solicitado %d, disponible %d",
		e.ProductName, e.Location, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError operación sobre un agregado en estado terminal o incompatible.
type InvalidStateError struct {
	Resource string
	ID       string
	Status   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %q en estado %q no admite la operación", e.Resource, e.ID, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// ConcurrencyConflictError la fila de stock cambió entre lectura y escritura
// (falló el compare-and-swap de versión). El caller debe reintentar la operación
// completa con datos frescos, no reenviar el mismo objetivo absoluto.
type ConcurrencyConflictError struct {
	ProductID string
	Location  Location
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("conflicto de concurrencia sobre stock de %q en %s", e.ProductID, e.Location)
}

func (e *ConcurrencyConflictError) Unwrap() error { return ErrConcurrencyConflict }
