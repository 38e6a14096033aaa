package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de las fechas sin hora (vencimiento, entrada).
const DateLayout = "2006-01-02"

// CreateSupplyRequest body para POST /api/stock/supplies.
type CreateSupplyRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category"`
	Unit            string           `json:"unit,omitempty"`
	MinQuantity     decimal.Decimal  `json:"min_quantity"`
	InitialQuantity decimal.Decimal  `json:"initial_quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	LotNumber       string           `json:"lot_number,omitempty"`
	ExpiryDate      string           `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Supplier        string           `json:"supplier,omitempty"`
	InvoiceRef      string           `json:"invoice_ref,omitempty"`
	EntryDate       string           `json:"entry_date,omitempty"` // YYYY-MM-DD
	StorageLocation string           `json:"storage_location,omitempty"`
}

// UpdateSupplyRequest body para PUT /api/stock/supplies/:id. Solo campos descriptivos;
// Quantity/CurrentQuantity/InitialQuantity existen para poder rechazarlos explícitamente.
type UpdateSupplyRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Unit            *string          `json:"unit,omitempty"`
	MinQuantity     *decimal.Decimal `json:"min_quantity,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Barcode         *string          `json:"barcode,omitempty"`
	LotNumber       *string          `json:"lot_number,omitempty"`
	ExpiryDate      *string          `json:"expiry_date,omitempty"`
	Supplier        *string          `json:"supplier,omitempty"`
	InvoiceRef      *string          `json:"invoice_ref,omitempty"`
	EntryDate       *string          `json:"entry_date,omitempty"`
	StorageLocation *string          `json:"storage_location,omitempty"`
	Active          *bool            `json:"active,omitempty"`

	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	CurrentQuantity *decimal.Decimal `json:"current_quantity,omitempty"`
	InitialQuantity *decimal.Decimal `json:"initial_quantity,omitempty"`
}

// SupplyResponse respuesta de insumo. StockLevel se calcula al vuelo.
type SupplyResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category"`
	Unit            string           `json:"unit"`
	MinQuantity     decimal.Decimal  `json:"min_quantity"`
	InitialQuantity decimal.Decimal  `json:"initial_quantity"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	LotNumber       string           `json:"lot_number,omitempty"`
	ExpiryDate      string           `json:"expiry_date,omitempty"`
	Supplier        string           `json:"supplier,omitempty"`
	InvoiceRef      string           `json:"invoice_ref,omitempty"`
	EntryDate       string           `json:"entry_date,omitempty"`
	StorageLocation string           `json:"storage_location,omitempty"`
	Active          bool             `json:"active"`
	StockLevel      string           `json:"stock_level"`
	LastMovementAt  *time.Time       `json:"last_movement_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// SupplyListRequest filtros de GET /api/stock/supplies.
type SupplyListRequest struct {
	Category   string
	Active     *bool
	Search     string
	StockLevel string // CRITICAL | LOW | OK
	Expiry     string // EXPIRED | EXPIRING | OK
	PageRequest
}

// SupplyListResponse listado paginado de insumos.
type SupplyListResponse struct {
	Items []SupplyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
