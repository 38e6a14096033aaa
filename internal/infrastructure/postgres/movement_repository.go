package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, supply_id, type, scope, quantity, quantity_before, quantity_after,
	COALESCE(origin, ''), COALESCE(destination, ''), COALESCE(vehicle_id, ''), COALESCE(campaign_id, ''),
	COALESCE(responsible_id, ''), COALESCE(invoice_ref, ''), COALESCE(notes, ''), created_at, created_by`

// MovementRepo libro de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func scanMovement(row scanner) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.SupplyID, &m.Type, &m.Scope, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.Origin, &m.Destination, &m.VehicleID, &m.CampaignID, &m.ResponsibleID, &m.InvoiceRef, &m.Notes,
		&m.CreatedAt, &m.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento. Los campos opcionales vacíos se guardan como NULL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, supply_id, type, scope, quantity, quantity_before, quantity_after,
			origin, destination, vehicle_id, campaign_id, responsible_id, invoice_ref, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), $15, $16)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SupplyID, m.Type, m.Scope, m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Origin, m.Destination, m.VehicleID, m.CampaignID, m.ResponsibleID, m.InvoiceRef, m.Notes,
		m.CreatedAt, m.CreatedBy,
	)
	return wrapErr("create movement", err)
}

// GetByID obtiene un movimiento por ID; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	if !validID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get movement", err)
	}
	return m, nil
}

// List aplica filtros y paginación por keyset sobre (created_at, id).
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	list := make([]*entity.Movement, 0)
	if f.SupplyID != "" && !validID(f.SupplyID) {
		return list, nil
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE TRUE`
	args := []any{}
	add := func(cond string, v ...any) {
		n := len(args)
		placeholders := make([]any, len(v))
		for i := range v {
			placeholders[i] = n + i + 1
		}
		query += " AND " + fmt.Sprintf(cond, placeholders...)
		args = append(args, v...)
	}
	if f.SupplyID != "" {
		add("supply_id = $%d", f.SupplyID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.VehicleID != "" {
		add("vehicle_id = $%d", f.VehicleID)
	}
	if f.CampaignID != "" {
		add("campaign_id = $%d", f.CampaignID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if f.After != nil {
		add("(created_at, id) > ($%d, $%d::uuid)", f.After.CreatedAt, f.After.ID)
	}
	query += " ORDER BY created_at, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list movements", err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, wrapErr("scan movement", err)
		}
		list = append(list, m)
	}
	return list, wrapErr("list movements", rows.Err())
}

// CountBySupply número de movimientos de un insumo (bloquea el borrado).
func (r *MovementRepo) CountBySupply(ctx context.Context, supplyID string) (int, error) {
	if !validID(supplyID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE supply_id = $1`, supplyID).Scan(&n)
	return n, wrapErr("count movements", err)
}
