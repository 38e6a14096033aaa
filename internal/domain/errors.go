package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio base. Los tipos de abajo los envuelven para que errors.Is funcione
// igual con el sentinel o con el error tipado.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("almacenamiento no disponible")
)

// Ubicaciones de stock reportadas en InsufficientStockError.
const (
	LocationCentral = "CENTRAL"
	LocationVehicle = "VEHICLE"
)

// ValidationError entrada mal formada; Field indica el campo ofensor.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError recurso referenciado inexistente (insumo, movimiento o vehículo).
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError atajo para construir un NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError el saldo resultante en el origen quedaría negativo.
// Location distingue stock central de stock del vehículo para que la UI explique qué lado falta.
type InsufficientStockError struct {
	Location  string
	VehicleID string
	SupplyID  string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	if e.Location == LocationVehicle {
		return fmt.Sprintf("stock insuficiente en el vehículo %s: disponible %s, solicitado %s",
			e.VehicleID, e.Available.String(), e.Requested.String())
	}
	return fmt.Sprintf("stock central insuficiente: disponible %s, solicitado %s",
		e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PersistenceError fallo del almacenamiento subyacente (conexión, commit).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// IsDomainError indica si err ya es un error de dominio conocido (no debe re-envolverse).
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrPersistence)
}
