package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.ItemRepository = (*Store)(nil)
	_ stock.TxRunner            = (*Store)(nil)
)

// Store almacén en memoria para despliegues de un solo nodo y tests
// herméticos. La exclusión mutua es por SKU: un mutex de canal por fila,
// con espera acotada. SKUs distintos nunca contienden entre sí.
//
// Fuera de Run, las operaciones son lecturas comprometidas o escrituras
// directas bajo el mutex global de corta duración; el ciclo
// lectura-verificación-escritura del ejecutor siempre entra por Run.
type Store struct {
	mu    sync.RWMutex
	items map[string]*entity.Item
	locks *lockTable
}

// NewStore construye el almacén. lockTimeout acota la espera por el
// bloqueo de un sku ocupado; cero o negativo espera solo al contexto.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		items: make(map[string]*entity.Item),
		locks: newLockTable(lockTimeout),
	}
}

// Run ejecuta fn con un repositorio transaccional: los bloqueos por sku se
// toman en GetBySKUForUpdate, las escrituras quedan pendientes y solo se
// aplican si fn devuelve nil. En error no se escribe nada y los bloqueos
// se liberan igual.
func (s *Store) Run(ctx context.Context, fn func(items repository.ItemRepository) error) error {
	tx := &memTx{store: s, pending: make(map[string]int64)}
	defer tx.releaseLocks()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

// Create inserta un producto nuevo. SKU repetido devuelve DuplicateSKUError.
func (s *Store) Create(ctx context.Context, item *entity.Item) error {
	if item.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.SKU]; ok {
		return &domain.DuplicateSKUError{SKU: item.SKU}
	}
	cp := *item
	s.items[item.SKU] = &cp
	return nil
}

// GetBySKU lectura comprometida; no bloquea a los escritores.
func (s *Store) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[sku]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

// GetBySKUForUpdate fuera de transacción equivale a una lectura simple:
// igual que un SELECT FOR UPDATE en autocommit, el bloqueo no sobrevive
// a la sentencia. El bloqueo real por sku lo toma el repositorio de Run.
func (s *Store) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Item, error) {
	return s.GetBySKU(ctx, sku)
}

// UpdateQuantity escritura directa con el piso de cero como red de seguridad.
func (s *Store) UpdateQuantity(ctx context.Context, sku string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[sku]
	if !ok {
		return &domain.ItemNotFoundError{SKU: sku}
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

// List devuelve todos los productos ordenados por sku.
func (s *Store) List(ctx context.Context) ([]*entity.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*entity.Item, 0, len(s.items))
	for _, item := range s.items {
		cp := *item
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SKU < items[j].SKU })
	return items, nil
}
