package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo producto con su cantidad inicial.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, sku, name, description, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SKU, item.Name, item.Description, item.Quantity,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateSKUError{SKU: item.SKU}
		}
		return translateError(err)
	}
	return nil
}

// GetBySKU obtiene un producto por SKU sin bloqueo de escritura.
// Devuelve nil si no existe.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	query := `
		SELECT id, sku, name, description, quantity, created_at, updated_at
		FROM items WHERE sku = $1`
	return r.scanItem(r.q.QueryRow(ctx, query, sku))
}

// GetBySKUForUpdate obtiene el producto y bloquea la fila para update
// (SELECT FOR UPDATE). Devuelve nil si no existe; nunca crea la fila.
func (r *ItemRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Item, error) {
	query := `
		SELECT id, sku, name, description, quantity, created_at, updated_at
		FROM items WHERE sku = $1
		FOR UPDATE`
	return r.scanItem(r.q.QueryRow(ctx, query, sku))
}

// UpdateQuantity escribe la nueva cantidad. El CHECK quantity >= 0 de la
// tabla actúa como red de seguridad si la verificación bajo bloqueo falló.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, sku string, quantity int64) error {
	query := `UPDATE items SET quantity = $2, updated_at = now() WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query, sku, quantity)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ItemNotFoundError{SKU: sku}
	}
	return nil
}

// List devuelve todos los productos ordenados por sku.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	query := `
		SELECT id, sku, name, description, quantity, created_at, updated_at
		FROM items ORDER BY sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Description, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, translateError(err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

func (r *ItemRepo) scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.SKU, &it.Name, &it.Description, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(err)
	}
	return &it, nil
}
