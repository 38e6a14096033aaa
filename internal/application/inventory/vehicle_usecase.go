package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// VehicleUseCase registro mínimo de la flota para referenciar stock por vehículo.
type VehicleUseCase struct {
	vehicles repository.VehicleRepository
	settings Settings
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(vehicles repository.VehicleRepository, settings Settings) *VehicleUseCase {
	return &VehicleUseCase{vehicles: vehicles, settings: settings.withDefaults()}
}

// Create registra un vehículo; la placa se guarda en mayúsculas y es única.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if plate == "" {
		return nil, domain.NewValidationError("plate", "obligatoria")
	}
	existing, err := uc.vehicles.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: placa %s ya registrada", domain.ErrDuplicate, plate)
	}
	v := &entity.Vehicle{
		ID:          uuid.New().String(),
		Plate:       plate,
		Description: strings.TrimSpace(in.Description),
		Active:      true,
		CreatedAt:   uc.settings.Clock().UTC(),
	}
	if err := uc.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	out := toVehicleResponse(v)
	return &out, nil
}

// List lista vehículos por placa.
func (uc *VehicleUseCase) List(ctx context.Context) ([]dto.VehicleResponse, error) {
	list, err := uc.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}
