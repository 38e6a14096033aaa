// Package stock contiene las reglas puras del libro de movimientos y de las alertas.
// No conoce persistencia: recibe saldos y devuelve transiciones o clasificaciones.
package stock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// Direction sentido del cambio de saldo que implica un tipo de movimiento.
type Direction int

const (
	Decrease Direction = -1
	Adjust   Direction = 0 // el sentido se infiere del saldo objetivo
	Increase Direction = 1
)

// Sign devuelve el sentido de un tipo de movimiento visto desde el origen.
// TRANSFERENCIA siempre descuenta en el origen; el destino recibe el crédito simétrico.
func Sign(movType string) (Direction, error) {
	switch movType {
	case entity.MovementTypeIn, entity.MovementTypeReturn:
		return Increase, nil
	case entity.MovementTypeOut, entity.MovementTypeLoss, entity.MovementTypeTransfer:
		return Decrease, nil
	case entity.MovementTypeAdjustment:
		return Adjust, nil
	}
	return 0, domain.NewValidationError("type", "tipo de movimiento desconocido")
}

// Transition par antes/después de un saldo junto con la magnitud aplicada.
type Transition struct {
	Quantity decimal.Decimal
	Before   decimal.Decimal
	After    decimal.Decimal
}

// Delta cambio con signo que produjo la transición.
func (t Transition) Delta() decimal.Decimal {
	return t.After.Sub(t.Before)
}

// Credit suma q al saldo.
func Credit(before, q decimal.Decimal) Transition {
	return Transition{Quantity: q, Before: before, After: before.Add(q)}
}

// Debit resta q al saldo. Si el saldo quedaría negativo devuelve InsufficientStockError
// (Location central por omisión; el caller ajusta ubicación y claves).
func Debit(before, q decimal.Decimal) (Transition, error) {
	after := before.Sub(q)
	if after.IsNegative() {
		return Transition{}, &domain.InsufficientStockError{
			Location:  domain.LocationCentral,
			Available: before,
			Requested: q,
		}
	}
	return Transition{Quantity: q, Before: before, After: after}, nil
}

// ValidateQuantity rechaza cantidades no positivas.
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	return nil
}

// Apply calcula la transición del saldo central para un movimiento.
// quantity puede venir en cero solo para AJUSTE; target solo aplica a AJUSTE.
func Apply(movType string, before, quantity decimal.Decimal, target *decimal.Decimal) (Transition, error) {
	dir, err := Sign(movType)
	if err != nil {
		return Transition{}, err
	}
	if dir != Adjust {
		if target != nil {
			return Transition{}, domain.NewValidationError("target_quantity", "solo aplica a AJUSTE")
		}
		if err := ValidateQuantity(quantity); err != nil {
			return Transition{}, err
		}
		if dir == Increase {
			return Credit(before, quantity), nil
		}
		return Debit(before, quantity)
	}

	// AJUSTE: fija el saldo al objetivo informado.
	if err := ValidateTarget(target); err != nil {
		return Transition{}, err
	}
	q := target.Sub(before).Abs()
	if q.IsZero() {
		return Transition{}, domain.NewValidationError("target_quantity", "igual al saldo actual")
	}
	if quantity.IsNegative() {
		return Transition{}, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if !quantity.IsZero() && !quantity.Equal(q) {
		return Transition{}, domain.NewValidationError("quantity", "no coincide con la diferencia hasta el objetivo")
	}
	return Transition{Quantity: q, Before: before, After: *target}, nil
}

// ValidateTarget saldo objetivo obligatorio y no negativo.
func ValidateTarget(target *decimal.Decimal) error {
	if target == nil {
		return domain.NewValidationError("target_quantity", "obligatorio para AJUSTE")
	}
	if target.IsNegative() {
		return domain.NewValidationError("target_quantity", "no puede ser negativo")
	}
	return nil
}

// NextMovementTime garantiza orden estrictamente creciente por insumo: max(now, last+1µs),
// truncado a microsegundos (precisión de timestamptz).
func NextMovementTime(now time.Time, last *time.Time) time.Time {
	t := now.UTC().Truncate(time.Microsecond)
	if last == nil {
		return t
	}
	min := last.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
	if t.Before(min) {
		return min
	}
	return t
}
