package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto con precio y stock inicial opcionales.
type CreateProductRequest struct {
	Name          string           `json:"name"`
	Barcode       string           `json:"barcode"`
	ImageURL      string           `json:"image_url"`
	CategoryID    string           `json:"category_id"`
	UnitID        string           `json:"unit_id"`
	StockQty      *int64           `json:"stock_qty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
}

// UpdateProductRequest edición parcial: los campos nil no se tocan.
// StockQty fija el stock en esa cantidad mediante un ajuste (no es un delta).
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Barcode       *string          `json:"barcode"`
	ImageURL      *string          `json:"image_url"`
	CategoryID    *string          `json:"category_id"`
	UnitID        *string          `json:"unit_id"`
	StockQty      *int64           `json:"stock_qty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
}

// ProductResponse producto con stock derivado del libro y precios vigentes.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	ImageURL      string          `json:"image_url"`
	CategoryID    string          `json:"category_id"`
	UnitID        string          `json:"unit_id"`
	IsActive      bool            `json:"is_active"`
	StockQty      int64           `json:"stock_qty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// StockHistoryEntry fila del historial de existencias del detalle de producto.
type StockHistoryEntry struct {
	TransactionNo string `json:"transaction_no"`
	Type          string `json:"type"`
	Qty           int64  `json:"qty"`
	Date          string `json:"date"`
	Description   string `json:"description"`
}

// ProductDetailResponse detalle con historial.
type ProductDetailResponse struct {
	ProductResponse
	StockHistory []StockHistoryEntry `json:"stock_history"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// DeleteProductsRequest borrado múltiple.
type DeleteProductsRequest struct {
	IDs []string `json:"ids"`
}
