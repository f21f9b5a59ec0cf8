package entity

import "time"

// StockEntry es una fila del libro de existencias: un delta con signo sobre un producto.
// El libro es append-only; el stock actual de un producto es SUM(qty) de sus filas.
// Ventas insertan qty negativo, compras positivo y los ajustes fijan el stock con
// dos filas: una que anula el neto anterior y otra con la cantidad nueva.
type StockEntry struct {
	ID            string
	ProductID     string
	TransactionID string
	Type          string // tipo de la transacción que originó el delta
	Qty           int64  // con signo
	UnitID        string
	Description   string
	CreatedAt     time.Time
	CreatedBy     string
}
