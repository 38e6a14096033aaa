package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Supplies  *inventory.SupplyUseCase
	Ledger    *inventory.RegisterMovementUseCase
	Queries   *inventory.StockQueryUseCase
	Alerts    *inventory.AlertUseCase
	Reconcile *inventory.ReconcileUseCase
	Vehicles  *inventory.VehicleUseCase
	JWTSecret string
	Logger    zerolog.Logger
}

// Router registra las rutas de la API. Todo lo que cuelga de /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Logger), AuthMiddleware(deps.JWTSecret))

	stock := api.Group("/stock")

	// Catálogo de insumos
	supplyHandler := NewSupplyHandler(deps.Supplies)
	supplies := stock.Group("/supplies")
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Put("/:id", supplyHandler.Update)
	supplies.Post("/:id/deactivate", supplyHandler.Deactivate)
	supplies.Delete("/:id", supplyHandler.Delete)

	// Libro de movimientos y stock por vehículo
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Queries)
	stock.Post("/movements", inventoryHandler.RegisterMovement)
	stock.Get("/movements", inventoryHandler.ListMovements)
	stock.Get("/movements/:id", inventoryHandler.GetMovement)
	stock.Post("/transfers", inventoryHandler.Transfer)
	stock.Post("/consumptions", inventoryHandler.RecordConsumption)
	stock.Get("/trucks/:vehicleId", inventoryHandler.GetTruckStock)

	// Alertas y reconciliación (solo lectura)
	alertHandler := NewAlertHandler(deps.Alerts, deps.Reconcile)
	stock.Get("/alerts/low-stock", alertHandler.LowStock)
	stock.Get("/alerts/expiring", alertHandler.Expiring)
	stock.Get("/reconciliation", alertHandler.ReconcileAll)
	stock.Get("/reconciliation/:id", alertHandler.ReconcileSupply)

	// Vehículos
	vehicleHandler := NewVehicleHandler(deps.Vehicles)
	vehicles := api.Group("/vehicles")
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
}
