package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

func TestClassifyStock_Limites(t *testing.T) {
	cases := []struct {
		qty     int64
		level   string
		pct     string
		flagged bool
	}{
		{0, entity.StockLevelCritical, "0", true},
		{4, entity.StockLevelCritical, "40", true},
		{5, entity.StockLevelLow, "50", true},
		{10, entity.StockLevelLow, "100", true},
		{11, entity.StockLevelOK, "110", false},
	}
	for _, tc := range cases {
		level, pct, flagged := stock.ClassifyStock(d(tc.qty), d(10))
		assert.Equal(t, tc.level, level, "qty=%d", tc.qty)
		assert.Equal(t, tc.flagged, flagged, "qty=%d", tc.qty)
		assert.True(t, pct.Equal(decimal.RequireFromString(tc.pct)), "qty=%d pct=%s", tc.qty, pct)
	}
}

func TestClassifyStock_UmbralCeroNuncaAlerta(t *testing.T) {
	_, _, flagged := stock.ClassifyStock(decimal.Zero, decimal.Zero)
	assert.False(t, flagged)
}

func TestClassifyStock_PorcentajeRedondeado(t *testing.T) {
	// 1/3 = 33.33%
	level, pct, _ := stock.ClassifyStock(d(1), d(3))
	assert.Equal(t, entity.StockLevelCritical, level)
	assert.Equal(t, "33.33", pct.String())
}

func TestClassifyStock_MitadExactaConDecimales(t *testing.T) {
	// 49.995% redondea a 50.00 pero sigue siendo CRITICAL
	level, _, _ := stock.ClassifyStock(decimal.RequireFromString("4.9995"), d(10))
	assert.Equal(t, entity.StockLevelCritical, level)
}

func TestClassifyExpiry_Limites(t *testing.T) {
	today := time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)
	day := func(n int) time.Time {
		return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}

	status, days, flagged := stock.ClassifyExpiry(day(30), today, 30)
	assert.Equal(t, entity.ExpiryExpiring, status)
	assert.Equal(t, 30, days)
	assert.True(t, flagged)

	_, days, flagged = stock.ClassifyExpiry(day(31), today, 30)
	assert.Equal(t, 31, days)
	assert.False(t, flagged)

	status, days, flagged = stock.ClassifyExpiry(day(-1), today, 30)
	assert.Equal(t, entity.ExpiryExpired, status)
	assert.Equal(t, -1, days)
	assert.True(t, flagged)

	status, days, _ = stock.ClassifyExpiry(day(0), today, 30)
	assert.Equal(t, entity.ExpiryExpiring, status)
	assert.Equal(t, 0, days)
}

func TestDaysBetween_CruzaCambioDeAnio(t *testing.T) {
	from := time.Date(2026, 12, 31, 22, 0, 0, 0, time.UTC)
	to := time.Date(2027, 1, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, stock.DaysBetween(from, to))
}

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "mascara n95", stock.NormalizeSearch("  Máscara N95 "))
	assert.Equal(t, "algodao", stock.NormalizeSearch("ALGODÃO"))
	assert.Equal(t, "seringa", stock.NormalizeSearch("seringa"))
}
