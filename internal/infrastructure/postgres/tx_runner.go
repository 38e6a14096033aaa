package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

const retryBackoff = 20 * time.Millisecond

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED + FOR UPDATE).
// Ante deadlock o fallo de serialización repite fn completa hasta maxRetries veces.
type TxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
	log        zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int, log zerolog.Logger) *TxRunner {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &TxRunner{pool: pool, maxRetries: maxRetries, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	var err error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			r.log.Debug().Int("attempt", attempt).Err(err).Msg("reintentando transacción")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("%w: transacción abortada tras %d reintentos: %v", domain.ErrConflict, r.maxRetries, err)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, Repos(tx)); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return wrapErr("transaction", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.PersistenceError{Op: "commit transaction", Err: err}
	}
	return nil
}

// Repos construye los repositorios sobre q (pool para lecturas, tx dentro de Run).
func Repos(q Querier) inventory.Repos {
	return inventory.Repos{
		Supplies:   NewSupplyRepository(q),
		Movements:  NewMovementRepository(q),
		TruckStock: NewTruckStockRepository(q),
		Vehicles:   NewVehicleRepository(q),
	}
}

var (
	_ Querier = (pgx.Tx)(nil)
	_ Querier = (*pgxpool.Pool)(nil)
)
