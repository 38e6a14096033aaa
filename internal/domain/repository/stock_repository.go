package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// TruckStockRepository puerto para el saldo por vehículo+insumo.
// Se usa dentro de transacciones y siempre después de bloquear el insumo.
type TruckStockRepository interface {
	// GetForUpdate bloquea la fila; si no existe devuelve un saldo en cero (sin error).
	GetForUpdate(ctx context.Context, vehicleID, supplyID string) (*entity.TruckStock, error)
	Upsert(ctx context.Context, ts *entity.TruckStock) error
	// ListByVehicle ordena por nombre del insumo.
	ListByVehicle(ctx context.Context, vehicleID string) ([]*entity.TruckStockLine, error)
	ListBySupply(ctx context.Context, supplyID string) ([]*entity.TruckStock, error)
}
