package entity

import "time"

// Item representa un producto rastreado por el ledger de stock.
// Quantity es un entero int64 no negativo: quantity >= 0 en todo momento
// observable. Solo el ejecutor de ajustes puede escribirlo.
type Item struct {
	ID          string // clave sustituta interna (UUID)
	SKU         string // identificador de negocio, único e inmutable
	Name        string
	Description string
	Quantity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
