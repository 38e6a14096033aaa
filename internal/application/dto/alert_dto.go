package dto

import "github.com/shopspring/decimal"

// StockAlertResponse alerta de stock bajo.
type StockAlertResponse struct {
	SupplyID    string          `json:"supply_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	Percentage  decimal.Decimal `json:"percentage"`
	Level       string          `json:"level"`
}

// ExpiryAlertResponse alerta de vencimiento de lote.
type ExpiryAlertResponse struct {
	SupplyID      string `json:"supply_id"`
	Name          string `json:"name"`
	LotNumber     string `json:"lot_number,omitempty"`
	ExpiryDate    string `json:"expiry_date"`
	DaysRemaining int    `json:"days_remaining"`
	Status        string `json:"status"`
}
