package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

// AlertUseCase deriva alertas de stock bajo y vencimiento. Solo lectura, se recalcula en cada llamada.
type AlertUseCase struct {
	supplies repository.SupplyRepository
	settings Settings
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(supplies repository.SupplyRepository, settings Settings) *AlertUseCase {
	return &AlertUseCase{supplies: supplies, settings: settings.withDefaults()}
}

// LowStock alertas de insumos activos en CRITICAL o LOW; CRITICAL primero, luego por porcentaje y nombre.
func (uc *AlertUseCase) LowStock(ctx context.Context) ([]dto.StockAlertResponse, error) {
	list, err := uc.activeSupplies(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]entity.StockAlert, 0)
	for _, s := range list {
		level, pct, flagged := stock.ClassifyStock(s.Quantity, s.MinQuantity)
		if !flagged {
			continue
		}
		alerts = append(alerts, entity.StockAlert{
			SupplyID:    s.ID,
			Name:        s.Name,
			Category:    s.Category,
			Unit:        s.Unit,
			Quantity:    s.Quantity,
			MinQuantity: s.MinQuantity,
			Percentage:  pct,
			Level:       level,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Level != b.Level {
			return a.Level == entity.StockLevelCritical
		}
		if !a.Percentage.Equal(b.Percentage) {
			return a.Percentage.LessThan(b.Percentage)
		}
		return a.Name < b.Name
	})

	out := make([]dto.StockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.StockAlertResponse{
			SupplyID:    a.SupplyID,
			Name:        a.Name,
			Category:    a.Category,
			Unit:        a.Unit,
			Quantity:    a.Quantity,
			MinQuantity: a.MinQuantity,
			Percentage:  a.Percentage,
			Level:       a.Level,
		})
	}
	return out, nil
}

// Expiring alertas de lotes vencidos o por vencer dentro de horizonDays (nil = valor configurado).
// Orden: días restantes ascendente, luego nombre.
func (uc *AlertUseCase) Expiring(ctx context.Context, horizonDays *int) ([]dto.ExpiryAlertResponse, error) {
	horizon := uc.settings.ExpiryHorizonDays
	if horizonDays != nil {
		if *horizonDays < 0 {
			return nil, domain.NewValidationError("horizon_days", "no puede ser negativo")
		}
		horizon = *horizonDays
	}
	list, err := uc.activeSupplies(ctx)
	if err != nil {
		return nil, err
	}
	today := uc.settings.today()
	alerts := make([]entity.ExpiryAlert, 0)
	for _, s := range list {
		if s.ExpiryDate == nil {
			continue
		}
		status, days, flagged := stock.ClassifyExpiry(*s.ExpiryDate, today, horizon)
		if !flagged {
			continue
		}
		alerts = append(alerts, entity.ExpiryAlert{
			SupplyID:      s.ID,
			Name:          s.Name,
			LotNumber:     s.LotNumber,
			ExpiryDate:    *s.ExpiryDate,
			DaysRemaining: days,
			Status:        status,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysRemaining != alerts[j].DaysRemaining {
			return alerts[i].DaysRemaining < alerts[j].DaysRemaining
		}
		return alerts[i].Name < alerts[j].Name
	})

	out := make([]dto.ExpiryAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.ExpiryAlertResponse{
			SupplyID:      a.SupplyID,
			Name:          a.Name,
			LotNumber:     a.LotNumber,
			ExpiryDate:    a.ExpiryDate.Format(dto.DateLayout),
			DaysRemaining: a.DaysRemaining,
			Status:        a.Status,
		})
	}
	return out, nil
}

func (uc *AlertUseCase) activeSupplies(ctx context.Context) ([]*entity.Supply, error) {
	active := true
	return uc.supplies.List(ctx, repository.SupplyFilter{Active: &active})
}
