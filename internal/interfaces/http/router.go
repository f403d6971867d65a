package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yorbis/ferreteria-api/internal/application/inventory"
	"github.com/yorbis/ferreteria-api/internal/application/purchasing"
	"github.com/yorbis/ferreteria-api/internal/application/sales"
	"github.com/yorbis/ferreteria-api/internal/application/settlement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC  *inventory.UseCase
	RecordSale   *sales.RecordSaleUseCase
	ReceiveUC    *purchasing.ReceivePurchaseUseCase
	SettlementUC *settlement.QueryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products / inventario
	products := api.Group("/products")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	products.Post("/", inventoryHandler.Create)
	products.Get("/", inventoryHandler.Search)
	products.Get("/:ref", inventoryHandler.Get)
	products.Patch("/:id/status", inventoryHandler.SetStatus)

	// Sales (punto de venta)
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.RecordSale)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.Get)

	// Purchases (compras a proveedor)
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.ReceiveUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.Get)

	// Settlements (cuadre de caja)
	settlements := api.Group("/settlements")
	settlementHandler := NewSettlementHandler(deps.SettlementUC)
	settlements.Get("/", settlementHandler.Get)
	settlements.Get("/range", settlementHandler.GetRange)
	settlements.Get("/pdf", settlementHandler.GetPDF)
}
