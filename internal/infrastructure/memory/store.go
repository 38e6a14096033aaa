// Package memory implementa los puertos del inventario en memoria (desarrollo y tests).
// Un único mutex serializa las transacciones; cada Run trabaja sobre una copia del estado
// que solo reemplaza al original si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type truckKey struct {
	vehicleID string
	supplyID  string
}

type state struct {
	supplies  map[string]*entity.Supply
	movements []*entity.Movement // orden de inserción
	trucks    map[truckKey]*entity.TruckStock
	vehicles  map[string]*entity.Vehicle
}

func newState() *state {
	return &state{
		supplies: make(map[string]*entity.Supply),
		trucks:   make(map[truckKey]*entity.TruckStock),
		vehicles: make(map[string]*entity.Vehicle),
	}
}

// clone copia los contenedores y las entidades mutables; los movimientos son inmutables
// y se comparten.
func (st *state) clone() *state {
	c := &state{
		supplies:  make(map[string]*entity.Supply, len(st.supplies)),
		movements: append([]*entity.Movement(nil), st.movements...),
		trucks:    make(map[truckKey]*entity.TruckStock, len(st.trucks)),
		vehicles:  make(map[string]*entity.Vehicle, len(st.vehicles)),
	}
	for k, v := range st.supplies {
		s := *v
		c.supplies[k] = &s
	}
	for k, v := range st.trucks {
		t := *v
		c.trucks[k] = &t
	}
	for k, v := range st.vehicles {
		veh := *v
		c.vehicles[k] = &veh
	}
	return c
}

// Store almacenamiento en memoria. Implementa inventory.TxRunner y expone repositorios
// de lectura/escritura fuera de transacción.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// accessor da acceso al estado: bajo el mutex del store o sobre la copia de una tx.
type accessor func(fn func(st *state) error) error

func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	access := accessor(func(f func(st *state) error) error { return f(work) })
	if err := fn(ctx, reposFor(access)); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Repos repositorios fuera de transacción (lecturas y escrituras descriptivas).
func (s *Store) Repos() inventory.Repos {
	return reposFor(s.locked)
}

func reposFor(access accessor) inventory.Repos {
	return inventory.Repos{
		Supplies:   &SupplyRepo{access: access},
		Movements:  &MovementRepo{access: access},
		TruckStock: &TruckStockRepo{access: access},
		Vehicles:   &VehicleRepo{access: access},
	}
}
