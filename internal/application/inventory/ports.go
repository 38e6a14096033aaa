package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Repos agrupa los repositorios del motor de inventario. Dentro de TxRunner.Run
// todos están atados a la misma transacción.
type Repos struct {
	Supplies   repository.SupplyRepository
	Movements  repository.MovementRepository
	TruckStock repository.TruckStockRepository
	Vehicles   repository.VehicleRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y nada de lo escrito es visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

// Clock fuente de tiempo inyectable (tests).
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }
