package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionSale       = "sale"
	TransactionPurchase   = "purchase"
	TransactionAdjustment = "adjustment"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash = "cash"
	PaymentQRIS = "qris"
)

// Transaction es la cabecera de una operación de negocio (venta, compra o ajuste).
// Una vez confirmada es inmutable: las correcciones se hacen con nuevas transacciones.
type Transaction struct {
	ID          string
	No          string // número legible: PRE-YYYYMMDD-NNNN, único
	Type        string // sale, purchase, adjustment
	Date        time.Time
	Description string
	TotalAmount decimal.Decimal // solo ventas; cero en compras y ajustes
	PaidAmount  decimal.Decimal
	PaymentType string // cash o qris; vacío si no es venta
	CreatedAt   time.Time
	CreatedBy   string
}

// TransactionItem es una línea de la transacción (producto y cantidad en unidades enteras).
type TransactionItem struct {
	ID            string
	TransactionID string
	ProductID     string
	UnitID        string
	Qty           int64
	Description   string
}
