package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. Los valores en portugués son los que viajan en JSON y en la BD.
const (
	MovementTypeIn         = "ENTRADA"
	MovementTypeOut        = "SAIDA"
	MovementTypeTransfer   = "TRANSFERENCIA"
	MovementTypeReturn     = "DEVOLUCAO"
	MovementTypeAdjustment = "AJUSTE"
	MovementTypeLoss       = "PERDA"
)

// Alcance del par quantity_before/quantity_after de un movimiento.
const (
	ScopeCentral = "CENTRAL"
	ScopeVehicle = "VEHICLE"
)

// LocationCentral etiqueta de origen/destino para el almacén central.
const LocationCentral = "CENTRAL"

var movementTypeAliases = map[string]string{
	MovementTypeIn:         MovementTypeIn,
	MovementTypeOut:        MovementTypeOut,
	MovementTypeTransfer:   MovementTypeTransfer,
	MovementTypeReturn:     MovementTypeReturn,
	MovementTypeAdjustment: MovementTypeAdjustment,
	MovementTypeLoss:       MovementTypeLoss,
	"IN":                   MovementTypeIn,
	"OUT":                  MovementTypeOut,
	"TRANSFER":             MovementTypeTransfer,
	"RETURN":               MovementTypeReturn,
	"ADJUSTMENT":           MovementTypeAdjustment,
	"LOSS":                 MovementTypeLoss,
}

// ParseMovementType normaliza el tipo (acepta alias en inglés).
func ParseMovementType(s string) (string, bool) {
	t, ok := movementTypeAliases[s]
	return t, ok
}

// Movement es una entrada inmutable del libro de movimientos (MovimentacaoEstoque).
// Quantity siempre es positiva; la dirección la da el tipo (y Origin en traslados).
type Movement struct {
	ID             string
	SupplyID       string
	Type           string
	Scope          string
	Quantity       decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Origin         string
	Destination    string
	VehicleID      string
	CampaignID     string
	ResponsibleID  string
	InvoiceRef     string
	Notes          string
	CreatedAt      time.Time
	CreatedBy      string
}

// FromVehicle indica si un traslado sale del vehículo hacia el central.
func (m *Movement) FromVehicle() bool {
	return m.Type == MovementTypeTransfer && m.Origin != LocationCentral
}
