package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC   *usecase.ItemUseCase
	StockSvc *stock.Service
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	itemHandler := NewItemHandler(deps.ItemUC)
	products.Post("/", itemHandler.Create)
	products.Get("/", itemHandler.List)
	products.Get("/:sku", itemHandler.GetBySKU)

	stockHandler := NewStockHandler(deps.StockSvc)
	products.Patch("/:sku/add", stockHandler.AddStock)
	products.Patch("/:sku/remove", stockHandler.RemoveStock)
	products.Get("/:sku/quantity", stockHandler.GetQuantity)
}
