package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de alerta de stock.
const (
	StockLevelCritical = "CRITICAL"
	StockLevelLow      = "LOW"
	StockLevelOK       = "OK"
)

// Estados de vencimiento de lote.
const (
	ExpiryExpired  = "EXPIRED"
	ExpiryExpiring = "EXPIRING"
	ExpiryOK       = "OK"
)

// StockAlert alerta derivada (no persistida) de stock bajo.
type StockAlert struct {
	SupplyID    string
	Name        string
	Category    string
	Unit        string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
	Percentage  decimal.Decimal
	Level       string
}

// ExpiryAlert alerta derivada (no persistida) de vencimiento de lote.
type ExpiryAlert struct {
	SupplyID      string
	Name          string
	LotNumber     string
	ExpiryDate    time.Time
	DaysRemaining int
	Status        string
}
