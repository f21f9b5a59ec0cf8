package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// StockHistoryRow fila del historial de existencias con datos de la transacción origen.
type StockHistoryRow struct {
	Entry         entity.StockEntry
	TransactionNo string
	Date          string // YYYY-MM-DD
}

// StockRepository puerto del libro de existencias (append-only).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Append agrega una fila con delta firmado. Nunca actualiza ni borra.
	Append(entry *entity.StockEntry) error
	// CurrentStock devuelve SUM(qty) del producto (0 si no tiene filas).
	CurrentStock(productID string) (int64, error)
	// CurrentStockForUpdate bloquea la fila del producto (SELECT FOR UPDATE) antes de
	// sumar el libro, de modo que verificación y descuento sean atómicos bajo concurrencia.
	CurrentStockForUpdate(productID string) (int64, error)
	// HistoryByProduct devuelve las filas del libro del producto, más recientes primero.
	HistoryByProduct(productID string) ([]*StockHistoryRow, error)
}
