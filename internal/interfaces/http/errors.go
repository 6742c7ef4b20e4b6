package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// writeError mapea la taxonomía de dominio a respuestas HTTP.
// Validación -> 422, conflicto -> 409, no encontrado -> 404,
// infraestructura -> 503 (timeout/almacén) o 500 (overflow y resto).
func writeError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
				insufficient.SKU, insufficient.Requested, insufficient.Available),
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "la cantidad debe ser un entero positivo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateSKU):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SKU", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrLockTimeout):
		log.Warn().Err(err).Str("path", c.Path()).Msg("timeout de bloqueo de fila")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "operación ocupada, reintente"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("almacenamiento no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento no disponible"})
	case errors.Is(err, domain.ErrQuantityOverflow):
		log.Error().Err(err).Str("path", c.Path()).Msg("desbordamiento de cantidad")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "OVERFLOW", Message: "desbordamiento de cantidad"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error no clasificado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
