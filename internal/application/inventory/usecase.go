package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

// RegisterMovementUseCase único escritor de saldos: registra movimientos de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) sobre el insumo y, en traslados/consumos, sobre el stock
// del vehículo. Orden de bloqueo fijo: insumo → vehículo.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	settings Settings
	log      zerolog.Logger
	metrics  ledgerMetrics
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, settings Settings) *RegisterMovementUseCase {
	settings = settings.withDefaults()
	log := settings.Logger.With().Str("component", "ledger").Logger()
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		settings: settings,
		log:      log,
		metrics:  newLedgerMetrics(log),
	}
}

// MovementInput entrada para registrar un movimiento.
// Quantity puede omitirse (cero) en AJUSTE; TargetQuantity solo aplica a AJUSTE.
// En TRANSFERENCIA, VehicleID es obligatorio y Origin == VehicleID indica que sale del vehículo.
type MovementInput struct {
	ActorID        string
	SupplyID       string
	Type           string
	Quantity       decimal.Decimal
	TargetQuantity *decimal.Decimal
	Origin         string
	Destination    string
	VehicleID      string
	CampaignID     string
	ResponsibleID  string
	InvoiceRef     string
	Notes          string
}

// RegisterMovement valida la entrada, bloquea el insumo, aplica la transición y persiste saldo,
// movimiento y (en traslados) stock del vehículo en la misma transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (mov *dto.MovementResponse, err error) {
	movType, ok := entity.ParseMovementType(strings.ToUpper(strings.TrimSpace(input.Type)))
	if !ok {
		return nil, domain.NewValidationError("type", "tipo de movimiento desconocido")
	}
	input.Type = movType

	ctx, span := startSpan(ctx, "inventory.RegisterMovement",
		attribute.String("supply.id", input.SupplyID),
		attribute.String("movement.type", movType))
	defer func() { endSpan(span, err) }()

	if err := uc.validate(&input); err != nil {
		return nil, err
	}

	var created *entity.Movement
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		var txErr error
		if movType == entity.MovementTypeTransfer {
			created, txErr = uc.doTransfer(ctx, repos, input)
		} else {
			created, txErr = uc.doCentral(ctx, repos, input)
		}
		return txErr
	})
	if err != nil {
		uc.logRejection(ctx, movType, err)
		return nil, err
	}
	uc.logCommitted(ctx, created)
	out := toMovementResponse(created)
	return &out, nil
}

// validate chequeos previos a cualquier escritura.
func (uc *RegisterMovementUseCase) validate(input *MovementInput) error {
	if strings.TrimSpace(input.ActorID) == "" {
		return domain.NewValidationError("actor", "se requiere un usuario autenticado")
	}
	if strings.TrimSpace(input.SupplyID) == "" {
		return domain.NewValidationError("supply_id", "obligatorio")
	}
	if input.Type == entity.MovementTypeAdjustment {
		if err := stock.ValidateTarget(input.TargetQuantity); err != nil {
			return err
		}
		if input.Quantity.IsNegative() {
			return domain.NewValidationError("quantity", "no puede ser negativa")
		}
		return nil
	}
	if input.TargetQuantity != nil {
		return domain.NewValidationError("target_quantity", "solo aplica a AJUSTE")
	}
	if err := stock.ValidateQuantity(input.Quantity); err != nil {
		return err
	}
	if input.Type != entity.MovementTypeTransfer {
		return nil
	}

	if input.VehicleID == "" {
		return domain.NewValidationError("vehicle_id", "obligatorio en TRANSFERENCIA")
	}
	switch input.Origin {
	case "", entity.LocationCentral:
		input.Origin, input.Destination = entity.LocationCentral, input.VehicleID
	case input.VehicleID:
		input.Destination = entity.LocationCentral
	default:
		return domain.NewValidationError("origin", "debe ser CENTRAL o el vehículo del traslado")
	}
	return nil
}

// doCentral movimientos que afectan solo el saldo central (todo salvo TRANSFERENCIA).
// VehicleID/CampaignID aquí son etiquetas informativas.
func (uc *RegisterMovementUseCase) doCentral(ctx context.Context, repos Repos, input MovementInput) (*entity.Movement, error) {
	supply, err := lockSupply(ctx, repos, input.SupplyID)
	if err != nil {
		return nil, err
	}
	tr, err := stock.Apply(input.Type, supply.Quantity, input.Quantity, input.TargetQuantity)
	if err != nil {
		return nil, withStockContext(err, supply.ID, domain.LocationCentral, "")
	}
	movedAt := stock.NextMovementTime(uc.settings.Clock(), supply.LastMovementAt)
	if err := repos.Supplies.UpdateBalance(ctx, supply.ID, tr.After, movedAt); err != nil {
		return nil, err
	}
	mov := uc.newMovement(input, entity.ScopeCentral, tr)
	mov.CreatedAt = movedAt
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// doTransfer descuenta en el origen y acredita en el destino (central ↔ vehículo).
// before/after del movimiento describen siempre el saldo central.
func (uc *RegisterMovementUseCase) doTransfer(ctx context.Context, repos Repos, input MovementInput) (*entity.Movement, error) {
	supply, err := lockSupply(ctx, repos, input.SupplyID)
	if err != nil {
		return nil, err
	}
	if err := requireVehicle(ctx, repos, input.VehicleID); err != nil {
		return nil, err
	}
	truck, err := repos.TruckStock.GetForUpdate(ctx, input.VehicleID, supply.ID)
	if err != nil {
		return nil, err
	}

	var central, onTruck stock.Transition
	if input.Origin == input.VehicleID {
		if onTruck, err = stock.Debit(truck.Quantity, input.Quantity); err != nil {
			return nil, withStockContext(err, supply.ID, domain.LocationVehicle, input.VehicleID)
		}
		central = stock.Credit(supply.Quantity, input.Quantity)
	} else {
		if central, err = stock.Debit(supply.Quantity, input.Quantity); err != nil {
			return nil, withStockContext(err, supply.ID, domain.LocationCentral, "")
		}
		onTruck = stock.Credit(truck.Quantity, input.Quantity)
	}

	movedAt := stock.NextMovementTime(uc.settings.Clock(), supply.LastMovementAt)
	if err := repos.Supplies.UpdateBalance(ctx, supply.ID, central.After, movedAt); err != nil {
		return nil, err
	}
	truck.Quantity = onTruck.After
	truck.UpdatedAt = movedAt
	if err := repos.TruckStock.Upsert(ctx, truck); err != nil {
		return nil, err
	}
	mov := uc.newMovement(input, entity.ScopeCentral, central)
	mov.CreatedAt = movedAt
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Transfer atajo sobre RegisterMovement para TRANSFERENCIA con dirección explícita.
func (uc *RegisterMovementUseCase) Transfer(ctx context.Context, actorID string, in dto.TransferRequest) (*dto.MovementResponse, error) {
	input := MovementInput{
		ActorID:       actorID,
		SupplyID:      in.SupplyID,
		Type:          entity.MovementTypeTransfer,
		Quantity:      in.Quantity,
		VehicleID:     in.VehicleID,
		ResponsibleID: in.ResponsibleID,
		Notes:         in.Notes,
	}
	if in.VehicleID == "" {
		return nil, domain.NewValidationError("vehicle_id", "obligatorio")
	}
	switch strings.ToUpper(in.Direction) {
	case dto.DirectionToVehicle:
		input.Origin, input.Destination = entity.LocationCentral, in.VehicleID
	case dto.DirectionToCentral:
		input.Origin, input.Destination = in.VehicleID, entity.LocationCentral
	default:
		return nil, domain.NewValidationError("direction", "valores válidos: TO_VEHICLE, TO_CENTRAL")
	}
	return uc.RegisterMovement(ctx, input)
}

// RecordConsumption salida de stock del vehículo durante una acción/campaña.
// Solo descuenta el stock del vehículo; el saldo central no cambia.
func (uc *RegisterMovementUseCase) RecordConsumption(ctx context.Context, actorID string, in dto.ConsumptionRequest) (mov *dto.MovementResponse, err error) {
	switch {
	case strings.TrimSpace(actorID) == "":
		return nil, domain.NewValidationError("actor", "se requiere un usuario autenticado")
	case strings.TrimSpace(in.CampaignID) == "":
		return nil, domain.NewValidationError("campaign_id", "obligatorio")
	case strings.TrimSpace(in.SupplyID) == "":
		return nil, domain.NewValidationError("supply_id", "obligatorio")
	case strings.TrimSpace(in.VehicleID) == "":
		return nil, domain.NewValidationError("vehicle_id", "obligatorio")
	}
	if err := stock.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "inventory.RecordConsumption",
		attribute.String("supply.id", in.SupplyID),
		attribute.String("vehicle.id", in.VehicleID))
	defer func() { endSpan(span, err) }()

	var created *entity.Movement
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		supply, err := lockSupply(ctx, repos, in.SupplyID)
		if err != nil {
			return err
		}
		if err := requireVehicle(ctx, repos, in.VehicleID); err != nil {
			return err
		}
		truck, err := repos.TruckStock.GetForUpdate(ctx, in.VehicleID, supply.ID)
		if err != nil {
			return err
		}
		tr, err := stock.Debit(truck.Quantity, in.Quantity)
		if err != nil {
			return withStockContext(err, supply.ID, domain.LocationVehicle, in.VehicleID)
		}

		movedAt := stock.NextMovementTime(uc.settings.Clock(), supply.LastMovementAt)
		// saldo central intacto; solo avanza last_movement_at para mantener el orden por insumo
		if err := repos.Supplies.UpdateBalance(ctx, supply.ID, supply.Quantity, movedAt); err != nil {
			return err
		}
		truck.Quantity = tr.After
		truck.UpdatedAt = movedAt
		if err := repos.TruckStock.Upsert(ctx, truck); err != nil {
			return err
		}
		created = uc.newMovement(MovementInput{
			ActorID:       actorID,
			SupplyID:      supply.ID,
			Type:          entity.MovementTypeOut,
			Origin:        in.VehicleID,
			VehicleID:     in.VehicleID,
			CampaignID:    in.CampaignID,
			ResponsibleID: in.ResponsibleID,
			Notes:         in.Notes,
		}, entity.ScopeVehicle, tr)
		created.CreatedAt = movedAt
		return repos.Movements.Create(ctx, created)
	})
	if err != nil {
		uc.logRejection(ctx, entity.MovementTypeOut, err)
		return nil, err
	}
	uc.logCommitted(ctx, created)
	out := toMovementResponse(created)
	return &out, nil
}

func (uc *RegisterMovementUseCase) newMovement(input MovementInput, scope string, tr stock.Transition) *entity.Movement {
	return &entity.Movement{
		ID:             uuid.New().String(),
		SupplyID:       input.SupplyID,
		Type:           input.Type,
		Scope:          scope,
		Quantity:       tr.Quantity,
		QuantityBefore: tr.Before,
		QuantityAfter:  tr.After,
		Origin:         input.Origin,
		Destination:    input.Destination,
		VehicleID:      input.VehicleID,
		CampaignID:     input.CampaignID,
		ResponsibleID:  input.ResponsibleID,
		InvoiceRef:     input.InvoiceRef,
		Notes:          input.Notes,
		CreatedBy:      input.ActorID,
	}
}

func (uc *RegisterMovementUseCase) logCommitted(ctx context.Context, m *entity.Movement) {
	uc.metrics.committed(ctx, m.Type, m.Scope)
	uc.log.Debug().
		Str("movement_id", m.ID).
		Str("supply_id", m.SupplyID).
		Str("type", m.Type).
		Str("scope", m.Scope).
		Str("before", m.QuantityBefore.String()).
		Str("after", m.QuantityAfter.String()).
		Msg("movimiento registrado")
}

func (uc *RegisterMovementUseCase) logRejection(ctx context.Context, movType string, err error) {
	var isErr *domain.InsufficientStockError
	if errors.As(err, &isErr) {
		uc.metrics.rejected(ctx, movType, isErr.Location)
		uc.log.Warn().
			Str("supply_id", isErr.SupplyID).
			Str("location", isErr.Location).
			Str("vehicle_id", isErr.VehicleID).
			Str("available", isErr.Available.String()).
			Str("requested", isErr.Requested.String()).
			Msg("movimiento rechazado por saldo insuficiente")
	}
}

// lockSupply bloquea la fila del insumo dentro de la tx.
func lockSupply(ctx context.Context, repos Repos, id string) (*entity.Supply, error) {
	supply, err := repos.Supplies.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.NewNotFoundError("supply", id)
	}
	return supply, nil
}

func requireVehicle(ctx context.Context, repos Repos, id string) error {
	v, err := repos.Vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.NewNotFoundError("vehicle", id)
	}
	return nil
}

// withStockContext completa un InsufficientStockError con la ubicación y claves del caso.
func withStockContext(err error, supplyID, location, vehicleID string) error {
	var isErr *domain.InsufficientStockError
	if errors.As(err, &isErr) {
		isErr.SupplyID = supplyID
		isErr.Location = location
		isErr.VehicleID = vehicleID
	}
	return err
}
