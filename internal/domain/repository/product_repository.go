package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // sobre name y barcode, insensible a tildes
	CategoryID string
	SortBy     string // name | barcode
	SortOrder  string // ASC | DESC
	Limit      int
	Offset     int
}

// ProductWithStock fila del listado: producto más su stock y precios vigentes.
// Los precios llegan en cero si el producto aún no tiene fila de precio.
type ProductWithStock struct {
	Product       entity.Product
	StockQty      int64
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*ProductWithStock, int, error)
	// SoftDelete marca is_active=false. No borra filas.
	SoftDelete(id, userID string) error
	// CountLedgerEntries cuenta las filas del libro de existencias del producto
	// (para vetar el borrado de productos ya usados en transacciones).
	CountLedgerEntries(productID string) (int, error)
}
