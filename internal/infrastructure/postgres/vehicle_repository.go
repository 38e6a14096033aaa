package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo vehículos sobre PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO vehicles (id, plate, description, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.Plate, v.Description, v.Active, v.CreatedAt)
	return wrapErr("create vehicle", err)
}

func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.get(ctx, `SELECT id, plate, description, active, created_at FROM vehicles WHERE id = $1`, id)
}

func (r *VehicleRepo) GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	return r.get(ctx, `SELECT id, plate, description, active, created_at FROM vehicles WHERE plate = $1`, plate)
}

func (r *VehicleRepo) get(ctx context.Context, query string, arg string) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(ctx, query, arg).Scan(&v.ID, &v.Plate, &v.Description, &v.Active, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get vehicle", err)
	}
	return &v, nil
}

func (r *VehicleRepo) List(ctx context.Context) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(ctx, `SELECT id, plate, description, active, created_at FROM vehicles ORDER BY plate`)
	if err != nil {
		return nil, wrapErr("list vehicles", err)
	}
	defer rows.Close()
	list := make([]*entity.Vehicle, 0)
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Description, &v.Active, &v.CreatedAt); err != nil {
			return nil, wrapErr("scan vehicle", err)
		}
		list = append(list, &v)
	}
	return list, wrapErr("list vehicles", rows.Err())
}
