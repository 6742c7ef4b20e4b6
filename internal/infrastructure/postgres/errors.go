package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Códigos SQLSTATE que este adaptador reclasifica.
const (
	codeUniqueViolation  = "23505"
	codeCheckViolation   = "23514"
	codeLockNotAvailable = "55P03"
	codeQueryCanceled    = "57014"
)

// translateError reclasifica cualquier fallo de almacenamiento en la
// taxonomía de dominio. Ningún tipo de pgx/pgconn cruza el límite del
// repositorio: lo que no tenga mapeo explícito sale como
// ErrStorageUnavailable con el detalle envuelto en el mensaje.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domain.ErrDuplicateSKU
		case codeCheckViolation:
			// El CHECK quantity >= 0 es la red de seguridad de último
			// recurso; si dispara, la capa de aplicación dejó pasar algo.
			return domain.ErrInsufficientStock
		case codeLockNotAvailable, codeQueryCanceled:
			return domain.ErrLockTimeout
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrLockTimeout
	}
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return false
}
