package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TruckStock saldo de un insumo asignado a un vehículo (EstoqueCaminhao).
// Las filas en cero se conservan como historial.
type TruckStock struct {
	VehicleID string
	SupplyID  string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// TruckStockLine fila de stock de vehículo enriquecida con datos del insumo para listados.
type TruckStockLine struct {
	TruckStock
	SupplyName string
	Unit       string
}
