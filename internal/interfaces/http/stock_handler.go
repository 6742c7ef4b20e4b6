package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP de ajuste y consulta de stock.
type StockHandler struct {
	svc *stock.Service
}

// NewStockHandler construye el handler.
func NewStockHandler(svc *stock.Service) *StockHandler {
	return &StockHandler{svc: svc}
}

// AddStock godoc
// @Summary      Sumar stock a un producto
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        sku   path  string                  true  "SKU del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "amount > 0"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{sku}/add [patch]
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.svc.AddStock(c.Context(), c.Params("sku"), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// RemoveStock godoc
// @Summary      Restar stock de un producto
// @Description  Rechaza con 409 si la cantidad disponible es menor a la
//               solicitada; la cantidad disponible del error se captura
//               dentro de la misma transacción bloqueada.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        sku   path  string                  true  "SKU del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "amount > 0"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{sku}/remove [patch]
func (h *StockHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.svc.RemoveStock(c.Context(), c.Params("sku"), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// GetQuantity godoc
// @Summary      Cantidad comprometida actual de un producto
// @Tags         stock
// @Produce      json
// @Param        sku  path  string  true  "SKU del producto"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku}/quantity [get]
func (h *StockHandler) GetQuantity(c *fiber.Ctx) error {
	sku := c.Params("sku")
	qty, err := h.svc.GetQuantity(c.Context(), sku)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{SKU: sku, Quantity: qty})
}
