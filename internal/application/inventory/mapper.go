package inventory

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/stock"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dto.DateLayout)
}

func toSupplyResponse(s *entity.Supply) dto.SupplyResponse {
	level, _, _ := stock.ClassifyStock(s.Quantity, s.MinQuantity)
	return dto.SupplyResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        s.Category,
		Unit:            s.Unit,
		MinQuantity:     s.MinQuantity,
		InitialQuantity: s.InitialQuantity,
		Quantity:        s.Quantity,
		UnitPrice:       s.UnitPrice,
		Barcode:         s.Barcode,
		LotNumber:       s.LotNumber,
		ExpiryDate:      formatDate(s.ExpiryDate),
		Supplier:        s.Supplier,
		InvoiceRef:      s.InvoiceRef,
		EntryDate:       formatDate(s.EntryDate),
		StorageLocation: s.StorageLocation,
		Active:          s.Active,
		StockLevel:      level,
		LastMovementAt:  s.LastMovementAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		SupplyID:       m.SupplyID,
		Type:           m.Type,
		Scope:          m.Scope,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Origin:         m.Origin,
		Destination:    m.Destination,
		VehicleID:      m.VehicleID,
		CampaignID:     m.CampaignID,
		ResponsibleID:  m.ResponsibleID,
		InvoiceRef:     m.InvoiceRef,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:          v.ID,
		Plate:       v.Plate,
		Description: v.Description,
		Active:      v.Active,
		CreatedAt:   v.CreatedAt,
	}
}
