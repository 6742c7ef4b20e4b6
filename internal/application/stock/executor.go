package stock

import (
	"context"
	"math"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Executor serializa las mutaciones de cantidad de un producto bajo
// exclusión mutua por SKU. Todas las llamadas a Adjust sobre el mismo SKU
// son linealizables; SKUs distintos nunca contienden entre sí (no hay
// sección crítica global).
//
// La cantidad es int64: un ajuste que supere math.MaxInt64 falla con
// ErrQuantityOverflow en lugar de envolver en silencio.
type Executor struct {
	txRunner TxRunner
	items    repository.ItemRepository
}

// NewExecutor construye el ejecutor. items se usa solo para lecturas
// comprometidas sin bloqueo; toda escritura pasa por txRunner.
func NewExecutor(txRunner TxRunner, items repository.ItemRepository) *Executor {
	return &Executor{txRunner: txRunner, items: items}
}

// Adjust aplica current + delta sobre el producto identificado por sku
// dentro de una transacción con bloqueo exclusivo de fila.
//
// Si !allowNegative y el resultado sería negativo, aborta sin escribir y
// devuelve InsufficientStockError con la cantidad disponible observada
// dentro de esa misma sección crítica. Cualquier fallo transitorio con el
// bloqueo tomado aborta la transacción completa: nunca hay escritura parcial.
//
// delta == 0 se resuelve como lectura simple: no puede violar el invariante
// y no necesita tomar el bloqueo de escritura.
func (e *Executor) Adjust(ctx context.Context, sku string, delta int64, allowNegative bool) (*entity.Item, error) {
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	if delta == 0 {
		return e.getItem(ctx, sku)
	}

	var updated *entity.Item
	err := e.txRunner.Run(ctx, func(items repository.ItemRepository) error {
		item, err := items.GetBySKUForUpdate(ctx, sku)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.ItemNotFoundError{SKU: sku}
		}
		if delta > 0 && item.Quantity > math.MaxInt64-delta {
			return domain.ErrQuantityOverflow
		}
		next := item.Quantity + delta
		if !allowNegative && next < 0 {
			// Rechazo dentro de la sección crítica: Available es la cantidad
			// leída bajo el bloqueo, no una relectura posterior.
			return &domain.InsufficientStockError{
				SKU:       sku,
				Requested: -delta,
				Available: item.Quantity,
			}
		}
		if err := items.UpdateQuantity(ctx, sku, next); err != nil {
			return err
		}
		item.Quantity = next
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetQuantity devuelve la última cantidad comprometida sin bloquear a los
// escritores. SKU inexistente devuelve ItemNotFoundError sin crear fila.
func (e *Executor) GetQuantity(ctx context.Context, sku string) (int64, error) {
	item, err := e.getItem(ctx, sku)
	if err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

func (e *Executor) getItem(ctx context.Context, sku string) (*entity.Item, error) {
	item, err := e.items.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.ItemNotFoundError{SKU: sku}
	}
	return item, nil
}
