package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// VehicleHandler registro mínimo de vehículos (protegido).
type VehicleHandler struct {
	uc *inventory.VehicleUseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *inventory.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar vehículo
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehicleRequest  true  "Placa y descripción"
// @Success      201   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar vehículos
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VehicleResponse
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
