package stock

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Service caso de uso de operaciones de stock. Sin estado entre llamadas:
// valida la entrada, delega en el ejecutor y traduce el resultado a la
// vista de dominio. No guarda copias de cantidades entre invocaciones.
type Service struct {
	exec *Executor
}

// NewService construye el servicio de stock.
func NewService(exec *Executor) *Service {
	return &Service{exec: exec}
}

// AddStock suma amount unidades al producto. amount <= 0 se rechaza con
// ErrInvalidAmount antes de cualquier acceso al almacenamiento. La suma
// nunca puede violar el piso de cero, por eso allowNegative=true.
func (s *Service) AddStock(ctx context.Context, sku string, amount int64) (*dto.ItemResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	item, err := s.exec.Adjust(ctx, sku, amount, true)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// RemoveStock resta amount unidades. amount <= 0 se rechaza con
// ErrInvalidAmount antes de cualquier acceso al almacenamiento. Un rechazo
// por stock insuficiente llega como InsufficientStockError con la cantidad
// disponible capturada atómicamente por el ejecutor; este servicio no hace
// una segunda lectura para armar el error (sería una carrera).
func (s *Service) RemoveStock(ctx context.Context, sku string, amount int64) (*dto.ItemResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	item, err := s.exec.Adjust(ctx, sku, -amount, false)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetQuantity devuelve la cantidad comprometida actual del producto.
func (s *Service) GetQuantity(ctx context.Context, sku string) (int64, error) {
	return s.exec.GetQuantity(ctx, sku)
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		SKU:         item.SKU,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
	}
}
