package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

// lockTable mantiene un mutex por sku. Se usa un canal con capacidad 1 en
// lugar de sync.Mutex porque la adquisición debe poder expirar: un caller
// esperando un sku caliente falla con ErrLockTimeout en vez de encolarse
// sin tope.
type lockTable struct {
	mu      sync.Mutex
	locks   map[string]chan struct{}
	timeout time.Duration
}

func newLockTable(timeout time.Duration) *lockTable {
	return &lockTable{
		locks:   make(map[string]chan struct{}),
		timeout: timeout,
	}
}

func (t *lockTable) lockFor(sku string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[sku]
	if !ok {
		l = make(chan struct{}, 1)
		t.locks[sku] = l
	}
	return l
}

// acquire toma el bloqueo exclusivo del sku o falla con ErrLockTimeout al
// vencer el plazo. La cancelación del contexto también aborta la espera.
func (t *lockTable) acquire(ctx context.Context, sku string) error {
	l := t.lockFor(sku)

	if t.timeout <= 0 {
		select {
		case l <- struct{}{}:
			return nil
		case <-ctx.Done():
			return domain.ErrLockTimeout
		}
	}

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return domain.ErrLockTimeout
	case <-timer.C:
		return domain.ErrLockTimeout
	}
}

// release libera el bloqueo del sku. Solo debe llamarse tras un acquire exitoso.
func (t *lockTable) release(sku string) {
	<-t.lockFor(sku)
}
