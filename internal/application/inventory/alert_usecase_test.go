package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func TestAlert_LowStockOrdenYLimites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createSupply(t, "Q11", 10, 11)
	f.createSupply(t, "Q10", 10, 10)
	f.createSupply(t, "Q5", 10, 5)
	f.createSupply(t, "Q4", 10, 4)
	f.createSupply(t, "Q0", 10, 0)
	f.createSupply(t, "SemUmbral", 0, 0)
	inactive := f.createSupply(t, "Inativo", 10, 1)
	_, err := f.supplies.Deactivate(ctx, inactive.ID)
	require.NoError(t, err)

	alerts, err := f.alerts.LowStock(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(alerts))
	for _, a := range alerts {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Q0", "Q4", "Q5", "Q10"}, names)
	assert.Equal(t, entity.StockLevelCritical, alerts[0].Level)
	assert.Equal(t, entity.StockLevelCritical, alerts[1].Level)
	assert.Equal(t, entity.StockLevelLow, alerts[2].Level)
	assert.Equal(t, "50", alerts[2].Percentage.String())
	assert.Equal(t, entity.StockLevelLow, alerts[3].Level)
}

func TestAlert_LowStockVacio(t *testing.T) {
	f := newFixture(t)
	alerts, err := f.alerts.LowStock(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestAlert_ExpiringLimites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t) // hoy: 2026-10-16 en America/Sao_Paulo
	for name, date := range map[string]string{
		"Vence30":  "2026-11-15",
		"Vence31":  "2026-11-16",
		"Vencido":  "2026-10-15",
		"VenceHoy": "2026-10-16",
	} {
		_, err := f.supplies.Create(ctx, dto.CreateSupplyRequest{
			Name: name, Category: "MEDICATION", InitialQuantity: dec(1), LotNumber: "L-" + name, ExpiryDate: date,
		})
		require.NoError(t, err)
	}
	f.createSupply(t, "SemValidade", 0, 1)

	alerts, err := f.alerts.Expiring(ctx, nil)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	assert.Equal(t, "Vencido", alerts[0].Name)
	assert.Equal(t, entity.ExpiryExpired, alerts[0].Status)
	assert.Equal(t, -1, alerts[0].DaysRemaining)

	assert.Equal(t, "VenceHoy", alerts[1].Name)
	assert.Equal(t, entity.ExpiryExpiring, alerts[1].Status)

	assert.Equal(t, "Vence30", alerts[2].Name)
	assert.Equal(t, 30, alerts[2].DaysRemaining)
	assert.Equal(t, "2026-11-15", alerts[2].ExpiryDate)

	wide := 31
	alerts, err = f.alerts.Expiring(ctx, &wide)
	require.NoError(t, err)
	assert.Len(t, alerts, 4)

	negative := -1
	_, err = f.alerts.Expiring(ctx, &negative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
