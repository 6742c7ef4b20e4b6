package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Agrupados por categoría: validación, conflicto, no encontrado e infraestructura.
var (
	// Validación: se rechazan antes de tocar el almacenamiento.
	ErrInvalidAmount = errors.New("cantidad inválida")
	ErrInvalidInput  = errors.New("entrada inválida")

	// Conflicto: el estado actual no permite la operación.
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicateSKU      = errors.New("sku duplicado")

	// No encontrado.
	ErrItemNotFound = errors.New("producto no encontrado")

	// Infraestructura: fallos transitorios o límites del sistema.
	ErrLockTimeout        = errors.New("timeout esperando el bloqueo de fila")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
	ErrQuantityOverflow   = errors.New("desbordamiento de cantidad")
)

// InsufficientStockError detalla un rechazo por stock insuficiente.
// Available es la cantidad observada dentro de la misma sección crítica
// que rechazó la operación; nunca proviene de una lectura posterior.
type InsufficientStockError struct {
	SKU       string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", e.SKU, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ItemNotFoundError indica que no existe producto con ese SKU.
type ItemNotFoundError struct {
	SKU string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("producto no encontrado: %s", e.SKU)
}

func (e *ItemNotFoundError) Unwrap() error { return ErrItemNotFound }

// DuplicateSKUError indica que ya existe un producto con ese SKU.
type DuplicateSKUError struct {
	SKU string
}

func (e *DuplicateSKUError) Error() string {
	return fmt.Sprintf("ya existe un producto con sku %s", e.SKU)
}

func (e *DuplicateSKUError) Unwrap() error { return ErrDuplicateSKU }
