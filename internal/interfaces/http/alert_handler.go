package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// AlertHandler alertas de stock bajo y vencimiento, y reconciliación del libro (protegido, solo lectura).
type AlertHandler struct {
	alerts    *inventory.AlertUseCase
	reconcile *inventory.ReconcileUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(alerts *inventory.AlertUseCase, reconcile *inventory.ReconcileUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts, reconcile: reconcile}
}

// LowStock godoc
// @Summary      Insumos con stock bajo o crítico
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /api/stock/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.alerts.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Lotes vencidos o por vencer
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        horizon_days  query  int  false  "Horizonte en días"  default(30)
// @Success      200  {array}  dto.ExpiryAlertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/alerts/expiring [get]
func (h *AlertHandler) Expiring(c *fiber.Ctx) error {
	var horizon *int
	if raw := c.Query("horizon_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, domain.NewValidationError("horizon_days", "debe ser un entero"))
		}
		horizon = &n
	}
	out, err := h.alerts.Expiring(c.UserContext(), horizon)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReconcileAll godoc
// @Summary      Reconciliar todos los insumos
// @Description  Reproduce el libro y compara con los saldos almacenados.
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReconciliationResponse
// @Router       /api/stock/reconciliation [get]
func (h *AlertHandler) ReconcileAll(c *fiber.Ctx) error {
	out, err := h.reconcile.ReconcileAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReconcileSupply godoc
// @Summary      Reconciliar un insumo
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/reconciliation/{id} [get]
func (h *AlertHandler) ReconcileSupply(c *fiber.Ctx) error {
	out, err := h.reconcile.ReconcileSupply(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
