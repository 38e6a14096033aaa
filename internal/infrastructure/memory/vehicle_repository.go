package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo vehículos en memoria.
type VehicleRepo struct {
	access accessor
}

func (r *VehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	return r.access(func(st *state) error {
		for _, existing := range st.vehicles {
			if existing.ID == v.ID || existing.Plate == v.Plate {
				return domain.ErrDuplicate
			}
		}
		c := *v
		st.vehicles[v.ID] = &c
		return nil
	})
}

func (r *VehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	var out *entity.Vehicle
	err := r.access(func(st *state) error {
		if v, ok := st.vehicles[id]; ok {
			c := *v
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *VehicleRepo) GetByPlate(_ context.Context, plate string) (*entity.Vehicle, error) {
	var out *entity.Vehicle
	err := r.access(func(st *state) error {
		for _, v := range st.vehicles {
			if v.Plate == plate {
				c := *v
				out = &c
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *VehicleRepo) List(_ context.Context) ([]*entity.Vehicle, error) {
	out := make([]*entity.Vehicle, 0)
	err := r.access(func(st *state) error {
		for _, v := range st.vehicles {
			c := *v
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, err
}
