package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// SupplyHandler maneja las peticiones HTTP del catálogo de insumos (protegido).
type SupplyHandler struct {
	uc *inventory.SupplyUseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *inventory.SupplyUseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear insumo
// @Description  El saldo inicial queda como saldo actual; no genera movimiento.
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.SupplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/supplies [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener insumo por ID
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.SupplyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/supplies/{id} [get]
func (h *SupplyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar insumos
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        category     query  string  false  "PPE | MEDICATION | DISPOSABLE_MATERIAL | EQUIPMENT | OTHER"
// @Param        active       query  bool    false  "Filtrar por estado"
// @Param        search       query  string  false  "Búsqueda por nombre (sin acentos ni mayúsculas)"
// @Param        stock_level  query  string  false  "CRITICAL | LOW | OK"
// @Param        expiry       query  string  false  "EXPIRED | EXPIRING | OK"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SupplyListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/supplies [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	in := dto.SupplyListRequest{
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		StockLevel: c.Query("stock_level"),
		Expiry:     c.Query("expiry"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 20),
			Offset: c.QueryInt("offset", 0),
		},
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return writeError(c, domain.NewValidationError("active", "debe ser true o false"))
		}
		in.Active = &active
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar insumo
// @Description  Solo campos descriptivos. Cambiar quantity aquí responde 400; use un movimiento AJUSTE.
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateSupplyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SupplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/supplies/{id} [put]
func (h *SupplyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar insumo
// @Description  Idempotente. El insumo desaparece de las alertas pero conserva su historial.
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.SupplyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/supplies/{id}/deactivate [post]
func (h *SupplyHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar insumo
// @Description  Solo insumos sin movimientos; con historial responde 409.
// @Tags         supplies
// @Security     Bearer
// @Param        id   path  string  true  "ID del insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
