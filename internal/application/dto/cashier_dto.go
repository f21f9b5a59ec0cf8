package dto

import "github.com/shopspring/decimal"

// CheckoutItem línea del carrito: producto y cantidad entera.
type CheckoutItem struct {
	ProductID string `json:"id"`
	Qty       int64  `json:"qty"`
}

// CheckoutRequest venta completa enviada por el cajero. TotalPrice es el total
// que vio en pantalla; el servidor lo recalcula y rechaza si difiere.
type CheckoutRequest struct {
	Products      []CheckoutItem  `json:"products"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod string          `json:"payment_method"` // cash | qris
}

// CheckoutResponse resultado de la venta confirmada.
type CheckoutResponse struct {
	TransactionID string          `json:"transactionId"`
	TransactionNo string          `json:"transactionNo"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentMethod string          `json:"paymentMethod"`
	Message       string          `json:"message"`
}

// ReviewOrderRequest carrito a cotizar.
type ReviewOrderRequest struct {
	Products []CheckoutItem `json:"products"`
}

// ReviewOrderLine línea cotizada con el precio vigente.
type ReviewOrderLine struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode"`
	Qty       int64           `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ReviewOrderResponse cotización del carrito antes de pagar.
type ReviewOrderResponse struct {
	TotalPrice     decimal.Decimal   `json:"totalPrice"`
	PaymentMethods []string          `json:"paymentMethods"`
	Products       []ReviewOrderLine `json:"products"`
}
