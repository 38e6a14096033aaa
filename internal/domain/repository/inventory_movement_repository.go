package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementCursor posición de keyset (created_at, id) tras la cual continuar el listado.
type MovementCursor struct {
	CreatedAt time.Time
	ID        string
}

// MovementFilter filtros del libro; From/To inclusivos. Limit <= 0 significa sin límite.
type MovementFilter struct {
	SupplyID   string
	Type       string
	VehicleID  string
	CampaignID string
	From       *time.Time
	To         *time.Time
	After      *MovementCursor
	Limit      int
}

// MovementRepository puerto del libro de movimientos. Solo inserta: no existe Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List ordena por (created_at, id).
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	CountBySupply(ctx context.Context, supplyID string) (int, error)
}
