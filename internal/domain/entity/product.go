package entity

import "time"

// Product representa un producto del catálogo del punto de venta.
// El stock actual no se guarda aquí: se deriva del libro de existencias (StockEntry).
type Product struct {
	ID         string
	Name       string
	Barcode    string
	ImageURL   string
	CategoryID string
	UnitID     string
	IsActive   bool // false = borrado lógico
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
	UpdatedBy  string
}
