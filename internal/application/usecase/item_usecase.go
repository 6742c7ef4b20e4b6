package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para productos. La cantidad solo se fija
// aquí en la creación; después de creado, toda mutación pasa por el
// ejecutor de stock.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un nuevo producto con su cantidad inicial.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(ctx, in.SKU)
	if existing != nil {
		return nil, &domain.DuplicateSKUError{SKU: in.SKU}
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetBySKU obtiene un producto por SKU.
func (uc *ItemUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.ItemNotFoundError{SKU: sku}
	}
	return toItemResponse(item), nil
}

// List devuelve todos los productos ordenados por sku.
func (uc *ItemUseCase) List(ctx context.Context) (*dto.ItemListResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toItemResponse(item))
	}
	return &dto.ItemListResponse{Items: out, Total: len(out)}, nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		SKU:         item.SKU,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
	}
}
