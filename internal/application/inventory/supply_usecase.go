package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

// SupplyUseCase casos de uso del catálogo de insumos. El saldo solo cambia vía movimientos.
type SupplyUseCase struct {
	txRunner TxRunner
	supplies repository.SupplyRepository
	settings Settings
	log      zerolog.Logger
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(txRunner TxRunner, supplies repository.SupplyRepository, settings Settings) *SupplyUseCase {
	settings = settings.withDefaults()
	return &SupplyUseCase{
		txRunner: txRunner,
		supplies: supplies,
		settings: settings,
		log:      settings.Logger.With().Str("component", "catalog").Logger(),
	}
}

// Create da de alta un insumo. El saldo inicial queda en InitialQuantity y no genera movimiento.
func (uc *SupplyUseCase) Create(ctx context.Context, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "obligatorio")
	}
	category, ok := entity.ParseCategory(strings.ToUpper(strings.TrimSpace(in.Category)))
	if !ok {
		return nil, domain.NewValidationError("category", "categoría desconocida")
	}
	if in.MinQuantity.IsNegative() {
		return nil, domain.NewValidationError("min_quantity", "no puede ser negativo")
	}
	if in.InitialQuantity.IsNegative() {
		return nil, domain.NewValidationError("initial_quantity", "no puede ser negativa")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.NewValidationError("unit_price", "no puede ser negativo")
	}
	expiry, err := parseDate("expiry_date", in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	entry, err := parseDate("entry_date", in.EntryDate)
	if err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}

	now := uc.settings.Clock().UTC()
	supply := &entity.Supply{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     in.Description,
		Category:        category,
		Unit:            unit,
		MinQuantity:     in.MinQuantity,
		InitialQuantity: in.InitialQuantity,
		Quantity:        in.InitialQuantity,
		UnitPrice:       in.UnitPrice,
		Barcode:         in.Barcode,
		LotNumber:       in.LotNumber,
		ExpiryDate:      expiry,
		Supplier:        in.Supplier,
		InvoiceRef:      in.InvoiceRef,
		EntryDate:       entry,
		StorageLocation: in.StorageLocation,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.supplies.Create(ctx, supply); err != nil {
		return nil, err
	}
	uc.log.Info().Str("supply_id", supply.ID).Str("name", supply.Name).Msg("insumo creado")
	out := toSupplyResponse(supply)
	return &out, nil
}

// GetByID obtiene un insumo por ID.
func (uc *SupplyUseCase) GetByID(ctx context.Context, id string) (*dto.SupplyResponse, error) {
	supply, err := uc.supplies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.NewNotFoundError("supply", id)
	}
	out := toSupplyResponse(supply)
	return &out, nil
}

// Update actualiza campos descriptivos. Cualquier intento de escribir el saldo se rechaza.
func (uc *SupplyUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplyRequest) (*dto.SupplyResponse, error) {
	switch {
	case in.Quantity != nil:
		return nil, domain.NewValidationError("quantity", "el saldo solo cambia mediante movimientos")
	case in.CurrentQuantity != nil:
		return nil, domain.NewValidationError("current_quantity", "el saldo solo cambia mediante movimientos")
	case in.InitialQuantity != nil:
		return nil, domain.NewValidationError("initial_quantity", "no se puede modificar tras el alta")
	}

	supply, err := uc.supplies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.NewNotFoundError("supply", id)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "obligatorio")
		}
		supply.Name = name
	}
	if in.Category != nil {
		category, ok := entity.ParseCategory(strings.ToUpper(strings.TrimSpace(*in.Category)))
		if !ok {
			return nil, domain.NewValidationError("category", "categoría desconocida")
		}
		supply.Category = category
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			return nil, domain.NewValidationError("unit", "obligatoria")
		}
		supply.Unit = unit
	}
	if in.MinQuantity != nil {
		if in.MinQuantity.IsNegative() {
			return nil, domain.NewValidationError("min_quantity", "no puede ser negativo")
		}
		supply.MinQuantity = *in.MinQuantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.NewValidationError("unit_price", "no puede ser negativo")
		}
		price := *in.UnitPrice
		supply.UnitPrice = &price
	}
	if in.ExpiryDate != nil {
		if supply.ExpiryDate, err = parseDate("expiry_date", *in.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if in.EntryDate != nil {
		if supply.EntryDate, err = parseDate("entry_date", *in.EntryDate); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		supply.Description = *in.Description
	}
	if in.Barcode != nil {
		supply.Barcode = *in.Barcode
	}
	if in.LotNumber != nil {
		supply.LotNumber = *in.LotNumber
	}
	if in.Supplier != nil {
		supply.Supplier = *in.Supplier
	}
	if in.InvoiceRef != nil {
		supply.InvoiceRef = *in.InvoiceRef
	}
	if in.StorageLocation != nil {
		supply.StorageLocation = *in.StorageLocation
	}
	if in.Active != nil {
		supply.Active = *in.Active
	}
	supply.UpdatedAt = uc.settings.Clock().UTC()
	if err := uc.supplies.Update(ctx, supply); err != nil {
		return nil, err
	}
	out := toSupplyResponse(supply)
	return &out, nil
}

// Deactivate baja lógica; siempre permitida e idempotente.
func (uc *SupplyUseCase) Deactivate(ctx context.Context, id string) (*dto.SupplyResponse, error) {
	supply, err := uc.supplies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.NewNotFoundError("supply", id)
	}
	if supply.Active {
		supply.Active = false
		supply.UpdatedAt = uc.settings.Clock().UTC()
		if err := uc.supplies.Update(ctx, supply); err != nil {
			return nil, err
		}
		uc.log.Info().Str("supply_id", id).Msg("insumo desactivado")
	}
	out := toSupplyResponse(supply)
	return &out, nil
}

// Delete borrado físico, solo si ningún movimiento referencia al insumo.
// Bloquea la fila para que no se registre un movimiento entre el conteo y el borrado.
func (uc *SupplyUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		supply, err := repos.Supplies.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if supply == nil {
			return domain.NewNotFoundError("supply", id)
		}
		n, err := repos.Movements.CountBySupply(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: el insumo tiene %d movimientos; use la desactivación", domain.ErrConflict, n)
		}
		if err := repos.Supplies.Delete(ctx, id); err != nil {
			return err
		}
		uc.log.Info().Str("supply_id", id).Msg("insumo eliminado")
		return nil
	})
}

// List lista insumos ordenados por nombre. Los filtros por nivel de stock y vencimiento
// se calculan sobre el estado actual, por eso la paginación se aplica después.
func (uc *SupplyUseCase) List(ctx context.Context, in dto.SupplyListRequest) (*dto.SupplyListResponse, error) {
	filter := repository.SupplyFilter{Active: in.Active, Search: stock.NormalizeSearch(in.Search)}
	if in.Category != "" {
		category, ok := entity.ParseCategory(strings.ToUpper(in.Category))
		if !ok {
			return nil, domain.NewValidationError("category", "categoría desconocida")
		}
		filter.Category = category
	}
	stockLevel := strings.ToUpper(in.StockLevel)
	switch stockLevel {
	case "", entity.StockLevelCritical, entity.StockLevelLow, entity.StockLevelOK:
	default:
		return nil, domain.NewValidationError("stock_level", "valores válidos: CRITICAL, LOW, OK")
	}
	expiry := strings.ToUpper(in.Expiry)
	switch expiry {
	case "", entity.ExpiryExpired, entity.ExpiryExpiring, entity.ExpiryOK:
	default:
		return nil, domain.NewValidationError("expiry", "valores válidos: EXPIRED, EXPIRING, OK")
	}
	in.DefaultPage()

	list, err := uc.supplies.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	today := uc.settings.today()
	matched := make([]*entity.Supply, 0, len(list))
	for _, s := range list {
		if stockLevel != "" {
			if level, _, _ := stock.ClassifyStock(s.Quantity, s.MinQuantity); level != stockLevel {
				continue
			}
		}
		if expiry != "" && expiryBucket(s, today, uc.settings.ExpiryHorizonDays) != expiry {
			continue
		}
		matched = append(matched, s)
	}
	// el repositorio ya ordena; se reafirma para el store en memoria y futuros adaptadores
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	out := &dto.SupplyListResponse{
		Items: make([]dto.SupplyResponse, 0, in.Limit),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(matched)},
	}
	for i := in.Offset; i < len(matched) && i < in.Offset+in.Limit; i++ {
		out.Items = append(out.Items, toSupplyResponse(matched[i]))
	}
	return out, nil
}

// expiryBucket un insumo sin fecha de vencimiento cae en OK.
func expiryBucket(s *entity.Supply, today time.Time, horizon int) string {
	if s.ExpiryDate == nil {
		return entity.ExpiryOK
	}
	status, _, _ := stock.ClassifyExpiry(*s.ExpiryDate, today, horizon)
	return status
}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return nil, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
	}
	return &t, nil
}
