package dto

import "github.com/shopspring/decimal"

// TransactionItemRequest línea de compra o ajuste.
type TransactionItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PurchaseTransactionRequest entrada de mercancía.
type PurchaseTransactionRequest struct {
	Items []TransactionItemRequest `json:"items"`
}

// AdjustmentTransactionRequest fija el stock de cada producto en Quantity.
type AdjustmentTransactionRequest struct {
	Items       []TransactionItemRequest `json:"items"`
	Description string                   `json:"description"`
}

// TransactionCreatedResponse id y número de la transacción registrada.
type TransactionCreatedResponse struct {
	TransactionID string `json:"transactionId"`
	TransactionNo string `json:"transactionNo"`
}

// TransactionListItem fila del listado de transacciones.
type TransactionListItem struct {
	ID          string          `json:"id"`
	No          string          `json:"no"`
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   string          `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
}

// TransactionListResponse listado paginado.
type TransactionListResponse struct {
	Data       []TransactionListItem `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// TransactionItemDetail línea del detalle de transacción.
type TransactionItemDetail struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitID      string `json:"unit_id"`
	Qty         int64  `json:"qty"`
	Description string `json:"description"`
}

// TransactionDetailResponse cabecera más líneas.
type TransactionDetailResponse struct {
	ID          string                  `json:"id"`
	No          string                  `json:"no"`
	Type        string                  `json:"type"`
	Date        string                  `json:"date"`
	Description string                  `json:"description"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	PaidAmount  decimal.Decimal         `json:"paid_amount"`
	PaymentType string                  `json:"payment_type"`
	Items       []TransactionItemDetail `json:"items"`
}
