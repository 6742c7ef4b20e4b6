package stock

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// fakeRepo repositorio en memoria instrumentado: cuenta llamadas para
// verificar qué rutas tocan el almacenamiento.
type fakeRepo struct {
	mu          sync.Mutex
	items       map[string]*entity.Item
	getCalls    int
	lockCalls   int
	updateCalls int
	createCalls int
}

func newFakeRepo(seed map[string]int64) *fakeRepo {
	items := make(map[string]*entity.Item, len(seed))
	for sku, qty := range seed {
		items[sku] = &entity.Item{
			SKU:      sku,
			Name:     "producto " + sku,
			Quantity: qty,
		}
	}
	return &fakeRepo{items: items}
}

func (r *fakeRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if _, ok := r.items[item.SKU]; ok {
		return &domain.DuplicateSKUError{SKU: item.SKU}
	}
	cp := *item
	r.items[item.SKU] = &cp
	return nil
}

func (r *fakeRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	item, ok := r.items[sku]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lockCalls++
	item, ok := r.items[sku]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeRepo) UpdateQuantity(ctx context.Context, sku string, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	item, ok := r.items[sku]
	if !ok {
		return &domain.ItemNotFoundError{SKU: sku}
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepo) List(ctx context.Context) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Item, 0, len(r.items))
	for _, item := range r.items {
		cp := *item
		items = append(items, &cp)
	}
	return items, nil
}

func (r *fakeRepo) quantity(t *testing.T, sku string) int64 {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[sku]
	require.True(t, ok, "el sku %s debe existir", sku)
	return item.Quantity
}

func (r *fakeRepo) storageCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getCalls + r.lockCalls + r.updateCalls + r.createCalls
}

// fakeTxRunner ejecuta el callback directamente contra el fakeRepo y
// cuenta cuántas transacciones se abrieron.
type fakeTxRunner struct {
	repo *fakeRepo
	mu   sync.Mutex
	runs int
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(items repository.ItemRepository) error) error {
	tr.mu.Lock()
	tr.runs++
	tr.mu.Unlock()
	return fn(tr.repo)
}

func newExecutorForTest(seed map[string]int64) (*Executor, *fakeRepo, *fakeTxRunner) {
	repo := newFakeRepo(seed)
	runner := &fakeTxRunner{repo: repo}
	return NewExecutor(runner, repo), repo, runner
}

func TestAdjust_AddAndRemove(t *testing.T) {
	exec, repo, _ := newExecutorForTest(map[string]int64{"SKU-1": 10})

	item, err := exec.Adjust(context.Background(), "SKU-1", 5, true)
	require.NoError(t, err)
	assert.Equal(t, int64(15), item.Quantity)

	item, err = exec.Adjust(context.Background(), "SKU-1", -3, false)
	require.NoError(t, err)
	assert.Equal(t, int64(12), item.Quantity)
	assert.Equal(t, int64(12), repo.quantity(t, "SKU-1"))
}

func TestAdjust_InsufficientCarriesAvailableFromCriticalSection(t *testing.T) {
	exec, repo, _ := newExecutorForTest(map[string]int64{"SKU-1": 12})

	_, err := exec.Adjust(context.Background(), "SKU-1", -20, false)
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "SKU-1", insufficient.SKU)
	assert.Equal(t, int64(20), insufficient.Requested)
	assert.Equal(t, int64(12), insufficient.Available)

	// El rechazo no escribe nada
	assert.Equal(t, int64(12), repo.quantity(t, "SKU-1"))
	assert.Zero(t, repo.updateCalls)
}

func TestAdjust_ZeroDeltaSkipsLock(t *testing.T) {
	exec, repo, runner := newExecutorForTest(map[string]int64{"SKU-1": 7})

	item, err := exec.Adjust(context.Background(), "SKU-1", 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.Quantity)

	// Lectura simple: sin transacción ni bloqueo de fila
	assert.Zero(t, runner.runs)
	assert.Zero(t, repo.lockCalls)
	assert.Equal(t, 1, repo.getCalls)
}

func TestAdjust_EmptySKU(t *testing.T) {
	exec, repo, _ := newExecutorForTest(nil)

	_, err := exec.Adjust(context.Background(), "", 1, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, repo.storageCalls())
}

func TestAdjust_NotFound(t *testing.T) {
	exec, _, _ := newExecutorForTest(map[string]int64{"SKU-1": 1})

	_, err := exec.Adjust(context.Background(), "NOPE", -1, false)
	var notFound *domain.ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NOPE", notFound.SKU)
}

func TestAdjust_Overflow(t *testing.T) {
	exec, repo, _ := newExecutorForTest(map[string]int64{"SKU-1": math.MaxInt64 - 1})

	_, err := exec.Adjust(context.Background(), "SKU-1", 5, true)
	assert.ErrorIs(t, err, domain.ErrQuantityOverflow)

	// Sin escritura: nada de wraparound silencioso
	assert.Zero(t, repo.updateCalls)
	assert.Equal(t, int64(math.MaxInt64-1), repo.quantity(t, "SKU-1"))
}

func TestAdjust_RemoveExactlyRemaining(t *testing.T) {
	exec, repo, _ := newExecutorForTest(map[string]int64{"SKU-1": 5})

	item, err := exec.Adjust(context.Background(), "SKU-1", -5, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.Quantity)
	assert.Equal(t, int64(0), repo.quantity(t, "SKU-1"))
}

func TestGetQuantity(t *testing.T) {
	exec, repo, runner := newExecutorForTest(map[string]int64{"SKU-1": 42})

	qty, err := exec.GetQuantity(context.Background(), "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), qty)

	// Lectura sin bloqueo de escritura
	assert.Zero(t, runner.runs)
	assert.Zero(t, repo.lockCalls)

	_, err = exec.GetQuantity(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
