package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo repositorio de insumos en memoria.
type SupplyRepo struct {
	access accessor
}

func (r *SupplyRepo) Create(_ context.Context, supply *entity.Supply) error {
	return r.access(func(st *state) error {
		if _, ok := st.supplies[supply.ID]; ok {
			return domain.ErrDuplicate
		}
		c := *supply
		st.supplies[supply.ID] = &c
		return nil
	})
}

func (r *SupplyRepo) GetByID(_ context.Context, id string) (*entity.Supply, error) {
	var out *entity.Supply
	err := r.access(func(st *state) error {
		if s, ok := st.supplies[id]; ok {
			c := *s
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria la tx ya tiene el mutex del store; equivale a GetByID.
func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	return r.GetByID(ctx, id)
}

func (r *SupplyRepo) Update(_ context.Context, supply *entity.Supply) error {
	return r.access(func(st *state) error {
		cur, ok := st.supplies[supply.ID]
		if !ok {
			return domain.NewNotFoundError("supply", supply.ID)
		}
		// saldo, saldo inicial y last_movement_at no se tocan desde aquí
		c := *supply
		c.Quantity = cur.Quantity
		c.InitialQuantity = cur.InitialQuantity
		c.LastMovementAt = cur.LastMovementAt
		c.CreatedAt = cur.CreatedAt
		st.supplies[supply.ID] = &c
		return nil
	})
}

func (r *SupplyRepo) UpdateBalance(_ context.Context, id string, quantity decimal.Decimal, movedAt time.Time) error {
	return r.access(func(st *state) error {
		s, ok := st.supplies[id]
		if !ok {
			return domain.NewNotFoundError("supply", id)
		}
		s.Quantity = quantity
		at := movedAt
		s.LastMovementAt = &at
		s.UpdatedAt = movedAt
		return nil
	})
}

func (r *SupplyRepo) List(_ context.Context, filter repository.SupplyFilter) ([]*entity.Supply, error) {
	out := make([]*entity.Supply, 0)
	err := r.access(func(st *state) error {
		for _, s := range st.supplies {
			if filter.Category != "" && s.Category != filter.Category {
				continue
			}
			if filter.Active != nil && s.Active != *filter.Active {
				continue
			}
			if filter.Search != "" && !strings.Contains(stock.NormalizeSearch(s.Name), filter.Search) {
				continue
			}
			c := *s
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *SupplyRepo) Delete(_ context.Context, id string) error {
	return r.access(func(st *state) error {
		if _, ok := st.supplies[id]; !ok {
			return domain.NewNotFoundError("supply", id)
		}
		delete(st.supplies, id)
		return nil
	})
}
