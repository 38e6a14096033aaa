package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.TruckStockRepository = (*TruckStockRepo)(nil)

// TruckStockRepo saldo por vehículo+insumo sobre PostgreSQL.
type TruckStockRepo struct {
	q Querier
}

// NewTruckStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTruckStockRepository(q Querier) *TruckStockRepo {
	return &TruckStockRepo{q: q}
}

// GetForUpdate bloquea la fila (vehicle_id, supply_id). Si no existe devuelve saldo cero;
// la fila del insumo ya está bloqueada por el llamador, así que no hay inserción concurrente.
func (r *TruckStockRepo) GetForUpdate(ctx context.Context, vehicleID, supplyID string) (*entity.TruckStock, error) {
	ts := &entity.TruckStock{VehicleID: vehicleID, SupplyID: supplyID, Quantity: decimal.Zero}
	if !validID(vehicleID) || !validID(supplyID) {
		return ts, nil
	}
	query := `
		SELECT quantity, updated_at FROM truck_stock
		WHERE vehicle_id = $1 AND supply_id = $2
		FOR UPDATE`
	err := r.q.QueryRow(ctx, query, vehicleID, supplyID).Scan(&ts.Quantity, &ts.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, wrapErr("get truck stock", err)
	}
	return ts, nil
}

// Upsert inserta o actualiza el saldo. Las filas en cero se conservan.
func (r *TruckStockRepo) Upsert(ctx context.Context, ts *entity.TruckStock) error {
	query := `
		INSERT INTO truck_stock (vehicle_id, supply_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vehicle_id, supply_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, ts.VehicleID, ts.SupplyID, ts.Quantity, ts.UpdatedAt)
	return wrapErr("upsert truck stock", err)
}

// ListByVehicle saldo del vehículo con nombre y unidad del insumo, ordenado por nombre.
func (r *TruckStockRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]*entity.TruckStockLine, error) {
	list := make([]*entity.TruckStockLine, 0)
	if !validID(vehicleID) {
		return list, nil
	}
	query := `
		SELECT t.vehicle_id, t.supply_id, t.quantity, t.updated_at, s.name, s.unit
		FROM truck_stock t
		JOIN supplies s ON s.id = t.supply_id
		WHERE t.vehicle_id = $1
		ORDER BY s.name COLLATE "C", t.supply_id`
	rows, err := r.q.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, wrapErr("list truck stock", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.TruckStockLine
		if err := rows.Scan(&l.VehicleID, &l.SupplyID, &l.Quantity, &l.UpdatedAt, &l.SupplyName, &l.Unit); err != nil {
			return nil, wrapErr("scan truck stock", err)
		}
		list = append(list, &l)
	}
	return list, wrapErr("list truck stock", rows.Err())
}

// ListBySupply saldos de un insumo en todos los vehículos (reconciliación).
func (r *TruckStockRepo) ListBySupply(ctx context.Context, supplyID string) ([]*entity.TruckStock, error) {
	list := make([]*entity.TruckStock, 0)
	if !validID(supplyID) {
		return list, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT vehicle_id, supply_id, quantity, updated_at FROM truck_stock WHERE supply_id = $1 ORDER BY vehicle_id`,
		supplyID)
	if err != nil {
		return nil, wrapErr("list truck stock", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ts entity.TruckStock
		if err := rows.Scan(&ts.VehicleID, &ts.SupplyID, &ts.Quantity, &ts.UpdatedAt); err != nil {
			return nil, wrapErr("scan truck stock", err)
		}
		list = append(list, &ts)
	}
	return list, wrapErr("list truck stock", rows.Err())
}
