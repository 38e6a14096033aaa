package inventory

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ReconcileUseCase verificación offline: reconstruye los saldos desde el libro y los compara
// con los saldos denormalizados. No corrige nada, solo informa.
type ReconcileUseCase struct {
	supplies   repository.SupplyRepository
	movements  repository.MovementRepository
	truckStock repository.TruckStockRepository
	log        zerolog.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	supplies repository.SupplyRepository,
	movements repository.MovementRepository,
	truckStock repository.TruckStockRepository,
	settings Settings,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		supplies:   supplies,
		movements:  movements,
		truckStock: truckStock,
		log:        settings.Logger.With().Str("component", "reconcile").Logger(),
	}
}

// ReconcileSupply reconcilia un insumo.
func (uc *ReconcileUseCase) ReconcileSupply(ctx context.Context, id string) (*dto.ReconciliationResponse, error) {
	supply, err := uc.supplies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.NewNotFoundError("supply", id)
	}
	return uc.reconcile(ctx, supply)
}

// ReconcileAll reconcilia todos los insumos (activos o no), ordenados por nombre.
func (uc *ReconcileUseCase) ReconcileAll(ctx context.Context) ([]dto.ReconciliationResponse, error) {
	list, err := uc.supplies.List(ctx, repository.SupplyFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReconciliationResponse, 0, len(list))
	for _, s := range list {
		r, err := uc.reconcile(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (uc *ReconcileUseCase) reconcile(ctx context.Context, supply *entity.Supply) (*dto.ReconciliationResponse, error) {
	movs, err := uc.movements.List(ctx, repository.MovementFilter{SupplyID: supply.ID})
	if err != nil {
		return nil, err
	}
	central, trucks := Replay(supply.InitialQuantity, movs)

	rows, err := uc.truckStock.ListBySupply(ctx, supply.ID)
	if err != nil {
		return nil, err
	}
	actual := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		actual[r.VehicleID] = r.Quantity
		if _, ok := trucks[r.VehicleID]; !ok {
			trucks[r.VehicleID] = decimal.Zero
		}
	}

	out := &dto.ReconciliationResponse{
		SupplyID:      supply.ID,
		Name:          supply.Name,
		Quantity:      supply.Quantity,
		Expected:      central,
		MovementCount: len(movs),
		Consistent:    supply.Quantity.Equal(central),
		Trucks:        make([]dto.TruckReconciliation, 0, len(trucks)),
	}
	for vehicleID, expected := range trucks {
		qty := actual[vehicleID]
		tr := dto.TruckReconciliation{
			VehicleID:  vehicleID,
			Quantity:   qty,
			Expected:   expected,
			Consistent: qty.Equal(expected),
		}
		out.Consistent = out.Consistent && tr.Consistent
		out.Trucks = append(out.Trucks, tr)
	}
	sort.Slice(out.Trucks, func(i, j int) bool { return out.Trucks[i].VehicleID < out.Trucks[j].VehicleID })

	if !out.Consistent {
		uc.log.Warn().
			Str("supply_id", supply.ID).
			Str("quantity", supply.Quantity.String()).
			Str("expected", central.String()).
			Msg("saldo inconsistente con el libro")
	}
	return out, nil
}

// Replay reconstruye el saldo central (initial + deltas CENTRAL) y el de cada vehículo
// (traslados entrantes - salientes - consumos) a partir de los movimientos de un insumo.
func Replay(initial decimal.Decimal, movs []*entity.Movement) (decimal.Decimal, map[string]decimal.Decimal) {
	central := initial
	trucks := make(map[string]decimal.Decimal)
	for _, m := range movs {
		if m.Scope == entity.ScopeVehicle {
			trucks[m.VehicleID] = trucks[m.VehicleID].Sub(m.Quantity)
			continue
		}
		switch m.Type {
		case entity.MovementTypeIn, entity.MovementTypeReturn:
			central = central.Add(m.Quantity)
		case entity.MovementTypeOut, entity.MovementTypeLoss:
			central = central.Sub(m.Quantity)
		case entity.MovementTypeAdjustment:
			// el sentido del ajuste quedó registrado en el par antes/después
			if m.QuantityAfter.LessThan(m.QuantityBefore) {
				central = central.Sub(m.Quantity)
			} else {
				central = central.Add(m.Quantity)
			}
		case entity.MovementTypeTransfer:
			if m.FromVehicle() {
				central = central.Add(m.Quantity)
				trucks[m.VehicleID] = trucks[m.VehicleID].Sub(m.Quantity)
			} else {
				central = central.Sub(m.Quantity)
				trucks[m.VehicleID] = trucks[m.VehicleID].Add(m.Quantity)
			}
		}
	}
	return central, trucks
}
