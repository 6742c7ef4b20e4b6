package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*memTx)(nil)

// memTx repositorio atado a una "transacción" en memoria. GetBySKUForUpdate
// toma el bloqueo por sku; UpdateQuantity deja la escritura pendiente y Run
// la aplica solo si el callback termina sin error. Los bloqueos se liberan
// siempre al salir de Run, con o sin commit.
type memTx struct {
	store   *Store
	held    []string
	pending map[string]int64
}

func (tx *memTx) holds(sku string) bool {
	for _, s := range tx.held {
		if s == sku {
			return true
		}
	}
	return false
}

// GetBySKUForUpdate bloquea el sku (espera acotada) y devuelve el estado
// comprometido más cualquier escritura pendiente de esta misma tx.
func (tx *memTx) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Item, error) {
	if !tx.holds(sku) {
		if err := tx.store.locks.acquire(ctx, sku); err != nil {
			return nil, err
		}
		tx.held = append(tx.held, sku)
	}
	item, err := tx.store.GetBySKU(ctx, sku)
	if err != nil || item == nil {
		return item, err
	}
	if q, ok := tx.pending[sku]; ok {
		item.Quantity = q
	}
	return item, nil
}

// UpdateQuantity registra la escritura pendiente. Exige el bloqueo del sku:
// ninguna ruta puede escribir cantidades sin haber pasado por el candado.
func (tx *memTx) UpdateQuantity(ctx context.Context, sku string, quantity int64) error {
	if !tx.holds(sku) {
		return domain.ErrStorageUnavailable
	}
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	tx.pending[sku] = quantity
	return nil
}

// GetBySKU lectura comprometida, sin tomar bloqueos.
func (tx *memTx) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return tx.store.GetBySKU(ctx, sku)
}

// Create delega en el almacén; la creación no participa del ciclo de ajuste.
func (tx *memTx) Create(ctx context.Context, item *entity.Item) error {
	return tx.store.Create(ctx, item)
}

// List lectura comprometida.
func (tx *memTx) List(ctx context.Context) ([]*entity.Item, error) {
	return tx.store.List(ctx)
}

// commit aplica las escrituras pendientes. Se ejecuta con los bloqueos de
// los skus afectados aún tomados, así el nuevo valor queda visible antes de
// que otro escritor pueda entrar a la sección crítica.
func (tx *memTx) commit() error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for sku, q := range tx.pending {
		item, ok := tx.store.items[sku]
		if !ok {
			return &domain.ItemNotFoundError{SKU: sku}
		}
		item.Quantity = q
		item.UpdatedAt = time.Now()
	}
	tx.pending = make(map[string]int64)
	return nil
}

func (tx *memTx) releaseLocks() {
	for _, sku := range tx.held {
		tx.store.locks.release(sku)
	}
	tx.held = nil
}
