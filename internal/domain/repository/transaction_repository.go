package repository

import (
	"time"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// TransactionFilter filtros del listado de transacciones.
type TransactionFilter struct {
	Search    string // sobre no, tipo y nombre de producto
	Type      string // sale | purchase | adjustment, vacío para todos
	SortBy    string // no | product_name | type | date | created_at
	SortOrder string // ASC | DESC
	Limit     int
	Offset    int
}

// TransactionListRow fila del listado: cabecera más los nombres de producto agregados.
type TransactionListRow struct {
	Transaction entity.Transaction
	ProductName string
}

// TransactionRepository puerto para cabeceras, líneas y numeración de transacciones.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	CreateItem(item *entity.TransactionItem) error
	GetByID(id string) (*entity.Transaction, error)
	ItemsByTransaction(transactionID string) ([]*entity.TransactionItem, error)
	List(filter TransactionFilter) ([]*TransactionListRow, int, error)
	// NextSequence asigna de forma atómica el siguiente consecutivo para (type, date).
	// Debe invocarse dentro de la misma transacción de base de datos que inserta la cabecera.
	NextSequence(txType string, date time.Time) (int, error)
}
