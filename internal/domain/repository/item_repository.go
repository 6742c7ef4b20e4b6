package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para productos.
// GetBySKUForUpdate y UpdateQuantity se usan dentro de transacciones
// para garantizar consistencia (lectura-verificación-escritura bajo bloqueo).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetBySKU lectura comprometida sin bloqueo de escritura. Devuelve nil si no existe.
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	// GetBySKUForUpdate bloquea la fila para update (SELECT FOR UPDATE o equivalente).
	// Devuelve nil si no existe; nunca fabrica una fila con cantidad cero.
	GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Item, error)
	// UpdateQuantity escribe la nueva cantidad. Solo válido dentro de la
	// misma transacción que tomó el bloqueo.
	UpdateQuantity(ctx context.Context, sku string, quantity int64) error
	// List devuelve todos los productos ordenados por sku.
	List(ctx context.Context) ([]*entity.Item, error)
}
