package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// Quantity es opcional solo en AJUSTE, donde manda TargetQuantity.
type RegisterMovementRequest struct {
	SupplyID       string           `json:"supply_id"`
	Type           string           `json:"type"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	TargetQuantity *decimal.Decimal `json:"target_quantity,omitempty"`
	Origin         string           `json:"origin,omitempty"`
	Destination    string           `json:"destination,omitempty"`
	VehicleID      string           `json:"vehicle_id,omitempty"`
	CampaignID     string           `json:"campaign_id,omitempty"`
	ResponsibleID  string           `json:"responsible_id,omitempty"`
	InvoiceRef     string           `json:"invoice_ref,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// Direcciones de traslado.
const (
	DirectionToVehicle = "TO_VEHICLE"
	DirectionToCentral = "TO_CENTRAL"
)

// TransferRequest body para POST /api/stock/transfers.
type TransferRequest struct {
	SupplyID      string          `json:"supply_id"`
	VehicleID     string          `json:"vehicle_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Direction     string          `json:"direction"` // TO_VEHICLE | TO_CENTRAL
	ResponsibleID string          `json:"responsible_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ConsumptionRequest body para POST /api/stock/consumptions (consumo en una acción/campaña).
type ConsumptionRequest struct {
	CampaignID    string          `json:"campaign_id"`
	SupplyID      string          `json:"supply_id"`
	VehicleID     string          `json:"vehicle_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	ResponsibleID string          `json:"responsible_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// MovementResponse respuesta de un movimiento del libro.
type MovementResponse struct {
	ID             string          `json:"id"`
	SupplyID       string          `json:"supply_id"`
	Type           string          `json:"type"`
	Scope          string          `json:"scope"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Origin         string          `json:"origin,omitempty"`
	Destination    string          `json:"destination,omitempty"`
	VehicleID      string          `json:"vehicle_id,omitempty"`
	CampaignID     string          `json:"campaign_id,omitempty"`
	ResponsibleID  string          `json:"responsible_id,omitempty"`
	InvoiceRef     string          `json:"invoice_ref,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// MovementListRequest filtros de GET /api/stock/movements. From/To aceptan RFC3339 o YYYY-MM-DD
// (en ese caso To cubre el día completo).
type MovementListRequest struct {
	SupplyID   string
	Type       string
	VehicleID  string
	CampaignID string
	From       string
	To         string
	Cursor     string
	Limit      int
}

// MovementListResponse página de movimientos; NextCursor vacío si no hay más.
type MovementListResponse struct {
	Items      []MovementResponse `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// TruckStockLineResponse saldo de un insumo en el vehículo.
type TruckStockLineResponse struct {
	SupplyID   string          `json:"supply_id"`
	SupplyName string          `json:"supply_name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TruckStockResponse stock asignado a un vehículo.
type TruckStockResponse struct {
	VehicleID string                   `json:"vehicle_id"`
	Items     []TruckStockLineResponse `json:"items"`
}

// TruckReconciliation resultado por vehículo de la reconciliación.
type TruckReconciliation struct {
	VehicleID  string          `json:"vehicle_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Expected   decimal.Decimal `json:"expected"`
	Consistent bool            `json:"consistent"`
}

// ReconciliationResponse compara el saldo denormalizado contra el replay del libro.
type ReconciliationResponse struct {
	SupplyID      string                `json:"supply_id"`
	Name          string                `json:"name"`
	Quantity      decimal.Decimal       `json:"quantity"`
	Expected      decimal.Decimal       `json:"expected"`
	MovementCount int                   `json:"movement_count"`
	Consistent    bool                  `json:"consistent"`
	Trucks        []TruckReconciliation `json:"trucks"`
}
