package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

func newServiceForTest(seed map[string]int64) (*Service, *fakeRepo, *fakeTxRunner) {
	exec, repo, runner := newExecutorForTest(seed)
	return NewService(exec), repo, runner
}

func TestAddStock_InvalidAmountSkipsStorage(t *testing.T) {
	svc, repo, runner := newServiceForTest(map[string]int64{"SKU-1": 10})

	_, err := svc.AddStock(context.Background(), "SKU-1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.AddStock(context.Background(), "SKU-1", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	// La validación rechaza antes de cualquier acceso al almacenamiento
	assert.Zero(t, repo.storageCalls())
	assert.Zero(t, runner.runs)
}

func TestRemoveStock_InvalidAmountSkipsStorage(t *testing.T) {
	svc, repo, runner := newServiceForTest(map[string]int64{"SKU-1": 10})

	_, err := svc.RemoveStock(context.Background(), "SKU-1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.RemoveStock(context.Background(), "SKU-1", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	assert.Zero(t, repo.storageCalls())
	assert.Zero(t, runner.runs)
}

func TestStockOperations_SerialScenario(t *testing.T) {
	// Crear con 10, sumar 5, restar 3, intentar restar 20
	svc, repo, _ := newServiceForTest(map[string]int64{"WIDGET-1": 10})

	view, err := svc.AddStock(context.Background(), "WIDGET-1", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), view.Quantity)

	view, err = svc.RemoveStock(context.Background(), "WIDGET-1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(12), view.Quantity)

	_, err = svc.RemoveStock(context.Background(), "WIDGET-1", 20)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(20), insufficient.Requested)
	assert.Equal(t, int64(12), insufficient.Available)

	// El rechazo deja la cantidad intacta
	assert.Equal(t, int64(12), repo.quantity(t, "WIDGET-1"))
}

func TestRemoveStock_UnknownSKU(t *testing.T) {
	svc, _, _ := newServiceForTest(map[string]int64{"SKU-1": 3})

	_, err := svc.RemoveStock(context.Background(), "NOPE", 1)
	var notFound *domain.ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NOPE", notFound.SKU)
}

func TestRemoveStock_BoundaryToZero(t *testing.T) {
	svc, _, _ := newServiceForTest(map[string]int64{"SKU-1": 5})

	// Restar exactamente lo disponible es legal y aterriza en 0
	view, err := svc.RemoveStock(context.Background(), "SKU-1", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Quantity)

	// Cualquier resta posterior falla con available=0
	_, err = svc.RemoveStock(context.Background(), "SKU-1", 1)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
}

func TestStockOperations_Conservation(t *testing.T) {
	const initial = int64(100)
	svc, repo, _ := newServiceForTest(map[string]int64{"SKU-1": initial})

	adds := []int64{7, 13, 1, 25}
	removes := []int64{4, 30, 2}

	var total = initial
	for _, a := range adds {
		_, err := svc.AddStock(context.Background(), "SKU-1", a)
		require.NoError(t, err)
		total += a
	}
	for _, r := range removes {
		_, err := svc.RemoveStock(context.Background(), "SKU-1", r)
		require.NoError(t, err)
		total -= r
	}

	assert.Equal(t, total, repo.quantity(t, "SKU-1"))

	qty, err := svc.GetQuantity(context.Background(), "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, total, qty)
}

func TestAddStock_ReturnsFullView(t *testing.T) {
	svc, _, _ := newServiceForTest(map[string]int64{"SKU-1": 2})

	view, err := svc.AddStock(context.Background(), "SKU-1", 3)
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", view.SKU)
	assert.Equal(t, "producto SKU-1", view.Name)
	assert.Equal(t, int64(5), view.Quantity)
}
