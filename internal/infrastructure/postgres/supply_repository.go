package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

const supplyColumns = `id, name, description, category, unit, min_quantity, initial_quantity, quantity,
	unit_price, barcode, lot_number, expiry_date, supplier, invoice_ref, entry_date, storage_location,
	active, last_movement_at, created_at, updated_at`

// SupplyRepo implementación sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// scanner lo cumplen pgx.Row y pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSupply(row scanner) (*entity.Supply, error) {
	var s entity.Supply
	var price decimal.NullDecimal
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.Unit,
		&s.MinQuantity, &s.InitialQuantity, &s.Quantity, &price,
		&s.Barcode, &s.LotNumber, &s.ExpiryDate, &s.Supplier, &s.InvoiceRef, &s.EntryDate,
		&s.StorageLocation, &s.Active, &s.LastMovementAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		p := price.Decimal
		s.UnitPrice = &p
	}
	return &s, nil
}

// Create persiste el insumo con su saldo inicial.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, name, name_search, description, category, unit, min_quantity, initial_quantity,
			quantity, unit_price, barcode, lot_number, expiry_date, supplier, invoice_ref, entry_date,
			storage_location, active, last_movement_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, stock.NormalizeSearch(s.Name), s.Description, s.Category, s.Unit,
		s.MinQuantity, s.InitialQuantity, s.Quantity, s.UnitPrice,
		s.Barcode, s.LotNumber, s.ExpiryDate, s.Supplier, s.InvoiceRef, s.EntryDate,
		s.StorageLocation, s.Active, s.LastMovementAt, s.CreatedAt, s.UpdatedAt,
	)
	return wrapErr("create supply", err)
}

// GetByID obtiene un insumo por ID; (nil, nil) si no existe.
func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	return r.get(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la tx.
func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	return r.get(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE id = $1 FOR UPDATE`, id)
}

func (r *SupplyRepo) get(ctx context.Context, query, id string) (*entity.Supply, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSupply(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get supply", err)
	}
	return s, nil
}

// Update persiste solo campos descriptivos; quantity, initial_quantity y last_movement_at
// no se escriben desde aquí.
func (r *SupplyRepo) Update(ctx context.Context, s *entity.Supply) error {
	if !validID(s.ID) {
		return domain.NewNotFoundError("supply", s.ID)
	}
	query := `
		UPDATE supplies SET name = $2, name_search = $3, description = $4, category = $5, unit = $6,
			min_quantity = $7, unit_price = $8, barcode = $9, lot_number = $10, expiry_date = $11,
			supplier = $12, invoice_ref = $13, entry_date = $14, storage_location = $15, active = $16,
			updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Name, stock.NormalizeSearch(s.Name), s.Description, s.Category, s.Unit,
		s.MinQuantity, s.UnitPrice, s.Barcode, s.LotNumber, s.ExpiryDate,
		s.Supplier, s.InvoiceRef, s.EntryDate, s.StorageLocation, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update supply", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("supply", s.ID)
	}
	return nil
}

// UpdateBalance único camino de escritura del saldo central; lo usa el motor de movimientos.
func (r *SupplyRepo) UpdateBalance(ctx context.Context, id string, quantity decimal.Decimal, movedAt time.Time) error {
	if !validID(id) {
		return domain.NewNotFoundError("supply", id)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE supplies SET quantity = $2, last_movement_at = $3, updated_at = $3 WHERE id = $1`,
		id, quantity, movedAt)
	if err != nil {
		return wrapErr("update supply balance", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("supply", id)
	}
	return nil
}

// List filtra por categoría, estado y búsqueda sin acentos; orden estable (name, id).
func (r *SupplyRepo) List(ctx context.Context, filter repository.SupplyFilter) ([]*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE TRUE`
	args := []any{}
	pos := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", pos)
		args = append(args, *filter.Active)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND strpos(name_search, $%d) > 0", pos)
		args = append(args, filter.Search)
	}
	query += ` ORDER BY name COLLATE "C", id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list supplies", err)
	}
	defer rows.Close()
	list := make([]*entity.Supply, 0)
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, wrapErr("scan supply", err)
		}
		list = append(list, s)
	}
	return list, wrapErr("list supplies", rows.Err())
}

// Delete borra el insumo. La FK de stock_movements impide borrar uno con historial.
func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.NewNotFoundError("supply", id)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el insumo tiene movimientos registrados", domain.ErrConflict)
		}
		return wrapErr("delete supply", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("supply", id)
	}
	return nil
}
