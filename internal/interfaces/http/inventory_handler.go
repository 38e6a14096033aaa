package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// InventoryHandler maneja movimientos, transferencias, consumos y stock por vehículo (protegido).
type InventoryHandler struct {
	ledger  *inventory.RegisterMovementUseCase
	queries *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.RegisterMovementUseCase, queries *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock central
// @Description  ENTRADA, SAIDA, DEVOLUCAO, PERDA, AJUSTE (target_quantity) o TRANSFERENCIA (vehicle_id).
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "supply_id, type, quantity | target_quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.RegisterMovementFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Orden cronológico (created_at, id). Paginación por cursor opaco.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        supply_id    query  string  false  "ID del insumo"
// @Param        type         query  string  false  "Tipo de movimiento"
// @Param        vehicle_id   query  string  false  "Vehículo"
// @Param        campaign_id  query  string  false  "Campaña"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        cursor       query  string  false  "next_cursor de la página anterior"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.queries.ListMovements(c.UserContext(), dto.MovementListRequest{
		SupplyID:   c.Query("supply_id"),
		Type:       c.Query("type"),
		VehicleID:  c.Query("vehicle_id"),
		CampaignID: c.Query("campaign_id"),
		From:       c.Query("from"),
		To:         c.Query("to"),
		Cursor:     c.Query("cursor"),
		Limit:      c.QueryInt("limit", 0),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.queries.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir entre stock central y vehículo
// @Tags         trucks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "direction: TO_VEHICLE | TO_CENTRAL"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Transfer(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordConsumption godoc
// @Summary      Registrar consumo desde un vehículo en una campaña
// @Tags         trucks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumptionRequest  true  "campaign_id, supply_id, vehicle_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/consumptions [post]
func (h *InventoryHandler) RecordConsumption(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.RecordConsumption(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTruckStock godoc
// @Summary      Stock de un vehículo
// @Tags         trucks
// @Security     Bearer
// @Produce      json
// @Param        vehicleId  path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.TruckStockResponse
// @Router       /api/stock/trucks/{vehicleId} [get]
func (h *InventoryHandler) GetTruckStock(c *fiber.Ctx) error {
	out, err := h.queries.GetTruckStock(c.UserContext(), c.Params("vehicleId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
