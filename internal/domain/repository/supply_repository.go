package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// SupplyFilter filtros que resuelve el almacenamiento. Search ya viene normalizado
// (minúsculas, sin acentos) y se compara contra el nombre normalizado.
type SupplyFilter struct {
	Category string
	Active   *bool
	Search   string
}

// SupplyRepository define el puerto de persistencia para Supply (DIP).
// GetByID/GetForUpdate devuelven (nil, nil) si no existe.
type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	GetByID(ctx context.Context, id string) (*entity.Supply, error)
	// GetForUpdate bloquea la fila del insumo (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Supply, error)
	// Update persiste solo campos descriptivos y el flag active; nunca el saldo.
	Update(ctx context.Context, supply *entity.Supply) error
	UpdateBalance(ctx context.Context, id string, quantity decimal.Decimal, movedAt time.Time) error
	// List devuelve los insumos ordenados por nombre e id.
	List(ctx context.Context, filter SupplyFilter) ([]*entity.Supply, error)
	Delete(ctx context.Context, id string) error
}
