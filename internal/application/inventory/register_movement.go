package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInput).
// Usar desde handlers HTTP o desde otros casos de uso que tengan userID y dto.RegisterMovementRequest.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	quantity := decimal.Zero
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	input := MovementInput{
		ActorID:        userID,
		SupplyID:       in.SupplyID,
		Type:           in.Type,
		Quantity:       quantity,
		TargetQuantity: in.TargetQuantity,
		Origin:         in.Origin,
		Destination:    in.Destination,
		VehicleID:      in.VehicleID,
		CampaignID:     in.CampaignID,
		ResponsibleID:  in.ResponsibleID,
		InvoiceRef:     in.InvoiceRef,
		Notes:          in.Notes,
	}
	return uc.RegisterMovement(ctx, input)
}
