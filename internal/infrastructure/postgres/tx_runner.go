package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con un
// repositorio atado a la tx. El bloqueo de fila lo toma el propio callback
// vía GetBySKUForUpdate; aquí solo se acota la espera por ese bloqueo con
// SET LOCAL lock_timeout, para que una tx lenta sobre un sku caliente no
// produzca colas sin tope.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool y el tope de espera por bloqueo.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con el repositorio atado a la tx
// y hace Commit o Rollback. Cualquier fallo con el bloqueo tomado revierte
// la transacción completa: nunca queda una escritura parcial visible.
func (r *TxRunner) Run(ctx context.Context, fn func(items repository.ItemRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return translateError(err)
		}
	}

	if err := fn(NewItemRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translateError(err)
	}
	return nil
}
