package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.TruckStockRepository = (*TruckStockRepo)(nil)

// TruckStockRepo stock por vehículo en memoria.
type TruckStockRepo struct {
	access accessor
}

func (r *TruckStockRepo) GetForUpdate(_ context.Context, vehicleID, supplyID string) (*entity.TruckStock, error) {
	out := &entity.TruckStock{VehicleID: vehicleID, SupplyID: supplyID, Quantity: decimal.Zero}
	err := r.access(func(st *state) error {
		if ts, ok := st.trucks[truckKey{vehicleID, supplyID}]; ok {
			*out = *ts
		}
		return nil
	})
	return out, err
}

func (r *TruckStockRepo) Upsert(_ context.Context, ts *entity.TruckStock) error {
	return r.access(func(st *state) error {
		c := *ts
		st.trucks[truckKey{ts.VehicleID, ts.SupplyID}] = &c
		return nil
	})
}

func (r *TruckStockRepo) ListByVehicle(_ context.Context, vehicleID string) ([]*entity.TruckStockLine, error) {
	out := make([]*entity.TruckStockLine, 0)
	err := r.access(func(st *state) error {
		for k, ts := range st.trucks {
			if k.vehicleID != vehicleID {
				continue
			}
			line := &entity.TruckStockLine{TruckStock: *ts}
			if s, ok := st.supplies[k.supplyID]; ok {
				line.SupplyName = s.Name
				line.Unit = s.Unit
			}
			out = append(out, line)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SupplyName != out[j].SupplyName {
			return out[i].SupplyName < out[j].SupplyName
		}
		return out[i].SupplyID < out[j].SupplyID
	})
	return out, err
}

func (r *TruckStockRepo) ListBySupply(_ context.Context, supplyID string) ([]*entity.TruckStock, error) {
	out := make([]*entity.TruckStock, 0)
	err := r.access(func(st *state) error {
		for k, ts := range st.trucks {
			if k.supplyID == supplyID {
				c := *ts
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleID < out[j].VehicleID })
	return out, err
}
