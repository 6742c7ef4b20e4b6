package dto

// CreateItemRequest entrada para crear un producto.
type CreateItemRequest struct {
	SKU         string `json:"sku" validate:"required,min=1,max=50"`
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
}

// AdjustStockRequest entrada para sumar o restar stock de un producto.
type AdjustStockRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

// ItemResponse vista de un producto tras una operación.
type ItemResponse struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    int64  `json:"quantity"`
}

// ItemListResponse lista de productos ordenada por sku.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// QuantityResponse cantidad comprometida actual de un producto.
type QuantityResponse struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
