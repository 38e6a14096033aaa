package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

func seedSupply(t *testing.T, store *memory.Store, id string, qty int64) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, store.Repos().Supplies.Create(context.Background(), &entity.Supply{
		ID: id, Name: "Luva " + id, Category: entity.CategoryPPE, Unit: "UN",
		Quantity: decimal.NewFromInt(qty), InitialQuantity: decimal.NewFromInt(qty),
		Active: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestStore_RunConfirmaSoloSinError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedSupply(t, store, "s1", 10)

	boom := errors.New("falla simulada")
	err := store.Run(ctx, func(ctx context.Context, repos inventory.Repos) error {
		require.NoError(t, repos.Supplies.UpdateBalance(ctx, "s1", decimal.NewFromInt(3), time.Now()))
		require.NoError(t, repos.Movements.Create(ctx, &entity.Movement{ID: "m1", SupplyID: "s1"}))
		require.NoError(t, repos.TruckStock.Upsert(ctx, &entity.TruckStock{VehicleID: "v1", SupplyID: "s1", Quantity: decimal.NewFromInt(7)}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	repos := store.Repos()
	s, err := repos.Supplies.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(10)), "rollback debe conservar el saldo")
	assert.Nil(t, s.LastMovementAt)

	m, err := repos.Movements.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m, "el movimiento no debe quedar visible")

	lines, err := repos.TruckStock.ListByVehicle(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	err = store.Run(ctx, func(ctx context.Context, repos inventory.Repos) error {
		return repos.Supplies.UpdateBalance(ctx, "s1", decimal.NewFromInt(3), time.Now())
	})
	require.NoError(t, err)
	s, _ = repos.Supplies.GetByID(ctx, "s1")
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(3)))
}

func TestStore_RunContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewStore().Run(ctx, func(context.Context, inventory.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSupplyRepo_UpdateNoTocaSaldo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedSupply(t, store, "s1", 10)
	repos := store.Repos()

	s, _ := repos.Supplies.GetByID(ctx, "s1")
	s.Name = "Luva nitrílica"
	s.Quantity = decimal.NewFromInt(999)
	require.NoError(t, repos.Supplies.Update(ctx, s))

	got, _ := repos.Supplies.GetByID(ctx, "s1")
	assert.Equal(t, "Luva nitrílica", got.Name)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestSupplyRepo_ListBuscaSinAcentos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now().UTC()
	for id, name := range map[string]string{"a": "Máscara N95", "b": "Álcool 70%", "c": "Gaze"} {
		require.NoError(t, store.Repos().Supplies.Create(ctx, &entity.Supply{
			ID: id, Name: name, Category: entity.CategoryOther, Active: true, CreatedAt: now, UpdatedAt: now,
		}))
	}
	list, err := store.Repos().Supplies.List(ctx, repository.SupplyFilter{Search: "mascara"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	all, err := store.Repos().Supplies.List(ctx, repository.SupplyFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Gaze", all[0].Name, "orden por nombre")
}

func TestMovementRepo_ListOrdenYCursor(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	err := store.Run(ctx, func(ctx context.Context, repos inventory.Repos) error {
		for i, id := range []string{"c", "a", "b"} {
			if err := repos.Movements.Create(ctx, &entity.Movement{
				ID: id, SupplyID: "s1", Type: entity.MovementTypeIn,
				CreatedAt: base.Add(time.Duration(i%2) * time.Second),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	repos := store.Repos()
	list, err := repos.Movements.List(ctx, repository.MovementFilter{SupplyID: "s1"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	// c y b comparten created_at; desempata el id
	assert.Equal(t, []string{"b", "c", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})

	page, err := repos.Movements.List(ctx, repository.MovementFilter{
		After: &repository.MovementCursor{CreatedAt: list[0].CreatedAt, ID: list[0].ID},
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].ID)

	n, err := repos.Movements.CountBySupply(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
