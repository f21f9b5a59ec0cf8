package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price registra los precios de compra y venta de un producto.
// Las filas se agregan, nunca se actualizan: el precio vigente es el de updated_at más reciente.
type Price struct {
	ID            string
	ProductID     string
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
	UpdatedBy     string
}
