package stock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// DefaultExpiryHorizonDays ventana de vencimiento por omisión.
const DefaultExpiryHorizonDays = 30

var hundred = decimal.NewFromInt(100)

// ClassifyStock clasifica el saldo frente al umbral mínimo.
// pct = quantity/min*100 redondeado a 2 decimales; flagged=false si no corresponde alertar.
// Un umbral 0 nunca se alerta.
func ClassifyStock(quantity, min decimal.Decimal) (level string, pct decimal.Decimal, flagged bool) {
	if !min.IsPositive() {
		return entity.StockLevelOK, decimal.Zero, false
	}
	pct = quantity.Mul(hundred).DivRound(min, 2)
	switch {
	// la comparación usa los valores exactos, no el porcentaje redondeado
	case quantity.IsZero() || quantity.Mul(decimal.NewFromInt(2)).LessThan(min):
		return entity.StockLevelCritical, pct, true
	case quantity.LessThanOrEqual(min):
		return entity.StockLevelLow, pct, true
	}
	return entity.StockLevelOK, pct, false
}

// ClassifyExpiry clasifica una fecha de vencimiento respecto de today.
// Ambas se comparan como fechas de calendario; today ya debe estar en la zona horaria del negocio.
func ClassifyExpiry(expiry, today time.Time, horizonDays int) (status string, days int, flagged bool) {
	days = DaysBetween(today, expiry)
	switch {
	case days < 0:
		return entity.ExpiryExpired, days, true
	case days <= horizonDays:
		return entity.ExpiryExpiring, days, true
	}
	return entity.ExpiryOK, days, false
}

// DaysBetween diferencia en días de calendario (to - from) ignorando hora y zona.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
