package stock

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén,
// pasando un repositorio atado a esa transacción. Garantiza atomicidad
// para el ciclo lectura-verificación-escritura del ejecutor: o se
// confirma todo o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(items repository.ItemRepository) error) error
}
