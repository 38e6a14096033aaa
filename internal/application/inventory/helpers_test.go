package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

const testActor = "00000000-0000-0000-0000-0000000000aa"

// fixture agrupa los casos de uso sobre un store en memoria con reloj fijo.
type fixture struct {
	store     *memory.Store
	now       time.Time
	settings  inventory.Settings
	supplies  *inventory.SupplyUseCase
	ledger    *inventory.RegisterMovementUseCase
	queries   *inventory.StockQueryUseCase
	alerts    *inventory.AlertUseCase
	reconcile *inventory.ReconcileUseCase
	vehicles  *inventory.VehicleUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		now:   time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC),
	}
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.UTC
	}
	f.settings = inventory.Settings{
		Clock:             func() time.Time { return f.now },
		Location:          loc,
		ExpiryHorizonDays: 30,
		Logger:            zerolog.Nop(),
	}
	repos := f.store.Repos()
	f.supplies = inventory.NewSupplyUseCase(f.store, repos.Supplies, f.settings)
	f.ledger = inventory.NewRegisterMovementUseCase(f.store, f.settings)
	f.queries = inventory.NewStockQueryUseCase(repos.Movements, repos.TruckStock, f.settings)
	f.alerts = inventory.NewAlertUseCase(repos.Supplies, f.settings)
	f.reconcile = inventory.NewReconcileUseCase(repos.Supplies, repos.Movements, repos.TruckStock, f.settings)
	f.vehicles = inventory.NewVehicleUseCase(repos.Vehicles, f.settings)
	return f
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decp(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func (f *fixture) createSupply(t *testing.T, name string, min, initial int64) *dto.SupplyResponse {
	t.Helper()
	s, err := f.supplies.Create(context.Background(), dto.CreateSupplyRequest{
		Name:            name,
		Category:        "PPE",
		MinQuantity:     dec(min),
		InitialQuantity: dec(initial),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) createVehicle(t *testing.T, plate string) string {
	t.Helper()
	v, err := f.vehicles.Create(context.Background(), dto.CreateVehicleRequest{Plate: plate})
	require.NoError(t, err)
	return v.ID
}

func (f *fixture) balance(t *testing.T, supplyID string) decimal.Decimal {
	t.Helper()
	s, err := f.supplies.GetByID(context.Background(), supplyID)
	require.NoError(t, err)
	return s.Quantity
}

func (f *fixture) truckBalance(t *testing.T, vehicleID, supplyID string) decimal.Decimal {
	t.Helper()
	ts, err := f.queries.GetTruckStock(context.Background(), vehicleID)
	require.NoError(t, err)
	for _, l := range ts.Items {
		if l.SupplyID == supplyID {
			return l.Quantity
		}
	}
	return decimal.Zero
}

func (f *fixture) movementsOf(t *testing.T, supplyID string) []dto.MovementResponse {
	t.Helper()
	list, err := f.queries.ListMovements(context.Background(), dto.MovementListRequest{SupplyID: supplyID, Limit: inventory.MaxMovementLimit})
	require.NoError(t, err)
	return list.Items
}
