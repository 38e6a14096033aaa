package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	List(ctx context.Context) ([]*entity.Vehicle, error)
}
