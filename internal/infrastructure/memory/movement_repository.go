package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria (solo inserción).
type MovementRepo struct {
	access accessor
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.access(func(st *state) error {
		for _, existing := range st.movements {
			if existing.ID == m.ID {
				return domain.ErrDuplicate
			}
		}
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.access(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				c := *m
				out = &c
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0)
	err := r.access(func(st *state) error {
		for _, m := range st.movements {
			if matches(m, f) {
				c := *m
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MovementRepo) CountBySupply(_ context.Context, supplyID string) (int, error) {
	n := 0
	err := r.access(func(st *state) error {
		for _, m := range st.movements {
			if m.SupplyID == supplyID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func matches(m *entity.Movement, f repository.MovementFilter) bool {
	switch {
	case f.SupplyID != "" && m.SupplyID != f.SupplyID:
		return false
	case f.Type != "" && m.Type != f.Type:
		return false
	case f.VehicleID != "" && m.VehicleID != f.VehicleID:
		return false
	case f.CampaignID != "" && m.CampaignID != f.CampaignID:
		return false
	case f.From != nil && m.CreatedAt.Before(*f.From):
		return false
	case f.To != nil && m.CreatedAt.After(*f.To):
		return false
	case f.After != nil && !less(f.After.CreatedAt, f.After.ID, m.CreatedAt, m.ID):
		return false
	}
	return true
}

// less orden del libro: (created_at, id).
func less(aAt time.Time, aID string, bAt time.Time, bID string) bool {
	if !aAt.Equal(bAt) {
		return aAt.Before(bAt)
	}
	return aID < bID
}
