package cashier

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una transacción de base de datos.
// Si fn retorna error se revierte todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRepository,
	) error) error
}

// ReceiptLine línea del recibo de venta.
type ReceiptLine struct {
	Name     string
	Qty      int64
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// ReceiptData datos que el generador de PDF necesita para el recibo.
type ReceiptData struct {
	TransactionNo string
	Date          string
	PaymentMethod string
	Lines         []ReceiptLine
	Total         decimal.Decimal
	Paid          decimal.Decimal
}

// ReceiptGenerator puerto del generador de recibos en PDF.
type ReceiptGenerator interface {
	Generate(data ReceiptData) ([]byte, error)
}
