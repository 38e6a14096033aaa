package inventory

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Límites de página del libro de movimientos.
const (
	DefaultMovementLimit = 50
	MaxMovementLimit     = 500
)

// StockQueryUseCase consultas de solo lectura sobre el libro y el stock por vehículo.
type StockQueryUseCase struct {
	movements  repository.MovementRepository
	truckStock repository.TruckStockRepository
	settings   Settings
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(movements repository.MovementRepository, truckStock repository.TruckStockRepository, settings Settings) *StockQueryUseCase {
	return &StockQueryUseCase{movements: movements, truckStock: truckStock, settings: settings.withDefaults()}
}

// GetMovement obtiene un movimiento por ID.
func (uc *StockQueryUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFoundError("movement", id)
	}
	out := toMovementResponse(m)
	return &out, nil
}

// ListMovements lista el libro ordenado por (created_at, id) con paginación por keyset.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	filter := repository.MovementFilter{
		SupplyID:   in.SupplyID,
		VehicleID:  in.VehicleID,
		CampaignID: in.CampaignID,
	}
	if in.Type != "" {
		movType, ok := entity.ParseMovementType(strings.ToUpper(in.Type))
		if !ok {
			return nil, domain.NewValidationError("type", "tipo de movimiento desconocido")
		}
		filter.Type = movType
	}
	var err error
	if filter.From, err = uc.parseBound("from", in.From, false); err != nil {
		return nil, err
	}
	if filter.To, err = uc.parseBound("to", in.To, true); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.NewValidationError("to", "anterior a from")
	}
	if in.Cursor != "" {
		if filter.After, err = decodeCursor(in.Cursor); err != nil {
			return nil, err
		}
	}
	limit := in.Limit
	switch {
	case limit < 0:
		return nil, domain.NewValidationError("limit", "no puede ser negativo")
	case limit == 0:
		limit = DefaultMovementLimit
	case limit > MaxMovementLimit:
		limit = MaxMovementLimit
	}
	// se pide una fila extra para saber si hay página siguiente
	filter.Limit = limit + 1

	list, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{Items: make([]dto.MovementResponse, 0, limit)}
	for i, m := range list {
		if i == limit {
			last := list[limit-1]
			out.NextCursor = encodeCursor(last.CreatedAt, last.ID)
			break
		}
		out.Items = append(out.Items, toMovementResponse(m))
	}
	return out, nil
}

// GetTruckStock stock del vehículo ordenado por nombre de insumo. Vehículo sin filas → lista vacía.
func (uc *StockQueryUseCase) GetTruckStock(ctx context.Context, vehicleID string) (*dto.TruckStockResponse, error) {
	lines, err := uc.truckStock.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	out := &dto.TruckStockResponse{VehicleID: vehicleID, Items: make([]dto.TruckStockLineResponse, 0, len(lines))}
	for _, l := range lines {
		out.Items = append(out.Items, dto.TruckStockLineResponse{
			SupplyID:   l.SupplyID,
			SupplyName: l.SupplyName,
			Unit:       l.Unit,
			Quantity:   l.Quantity,
			UpdatedAt:  l.UpdatedAt,
		})
	}
	return out, nil
}

// parseBound acepta RFC3339 o YYYY-MM-DD en la zona de negocio; con endOfDay la fecha sola
// cubre el día completo (límite inclusivo).
func (uc *StockQueryUseCase) parseBound(field, value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, value, uc.settings.Location)
	if err != nil {
		return nil, domain.NewValidationError(field, "formato esperado RFC3339 o YYYY-MM-DD")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return &t, nil
}

func encodeCursor(createdAt time.Time, id string) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (*repository.MovementCursor, error) {
	invalid := domain.NewValidationError("cursor", "cursor inválido")
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, invalid
	}
	ts, id, ok := strings.Cut(string(raw), "|")
	if !ok {
		return nil, invalid
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalid
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, invalid
	}
	return &repository.MovementCursor{CreatedAt: t, ID: id}, nil
}
