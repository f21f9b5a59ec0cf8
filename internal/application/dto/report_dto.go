package dto

import "github.com/shopspring/decimal"

// MetricWithGrowth valor del período, el del período anterior y el crecimiento en %.
type MetricWithGrowth struct {
	Current decimal.Decimal `json:"current"`
	Before  decimal.Decimal `json:"before"`
	Growth  float64         `json:"growth"`
}

// CountWithGrowth igual que MetricWithGrowth pero para conteos.
type CountWithGrowth struct {
	Current int     `json:"current"`
	Before  int     `json:"before"`
	Growth  float64 `json:"growth"`
}

// TopProduct producto del top de ventas.
type TopProduct struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Sold  int64  `json:"sold"`
}

// DashboardResponse métricas principales del negocio.
type DashboardResponse struct {
	Revenue      MetricWithGrowth `json:"revenue"`
	Transactions CountWithGrowth  `json:"transactions"`
	Profit       MetricWithGrowth `json:"profit"`
	TopProducts  []TopProduct     `json:"top_products"`
}

// PaymentMethodBreakdown total y participación de un método de pago.
type PaymentMethodBreakdown struct {
	Method  string          `json:"method"`
	Total   decimal.Decimal `json:"total"`
	Percent float64         `json:"percent"`
}

// SalesReportResponse reporte de ventas del período.
type SalesReportResponse struct {
	Sales          MetricWithGrowth         `json:"sales"`
	Transactions   CountWithGrowth          `json:"transactions"`
	AvgTicket      MetricWithGrowth         `json:"avg_ticket"`
	PaymentMethods []PaymentMethodBreakdown `json:"payment_methods"`
}

// SalesHistoryItem venta individual del día.
type SalesHistoryItem struct {
	TransactionNo string          `json:"transaction_id"`
	Revenue       decimal.Decimal `json:"revenue"`
	Profit        decimal.Decimal `json:"profit"`
}

// ProfitReportResponse utilidad del día contra el día anterior.
type ProfitReportResponse struct {
	Profit       MetricWithGrowth   `json:"profit"`
	Margin       float64            `json:"margin"`
	SalesHistory []SalesHistoryItem `json:"sales_history"`
}

// TrendProduct producto del top con su tendencia respecto al período anterior.
type TrendProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"product_name"`
	ImageURL  string `json:"image_url"`
	Quantity  int64  `json:"quantity"`
	Trend     string `json:"trend"` // up | down
}

// CategorySales ventas por categoría con color estable para la gráfica.
type CategorySales struct {
	CategoryName string `json:"category_name"`
	Quantity     int64  `json:"quantity"`
	Percent      float64 `json:"percent"`
	Color        string `json:"color"`
}

// LowStockProduct producto con existencias bajo el umbral.
type LowStockProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"product_name"`
	ImageURL  string `json:"image_url"`
	Stock     int64  `json:"stock"`
	Unit      string `json:"unit"`
	Threshold int64  `json:"threshold"`
}

// SalesProductsReportResponse top de productos, categorías y stock bajo.
type SalesProductsReportResponse struct {
	TopProducts     []TrendProduct    `json:"top_products"`
	SalesByCategory []CategorySales   `json:"sales_by_category"`
	LowStock        []LowStockProduct `json:"low_stock"`
}

// RestockItem línea de compra del reporte de reabastecimiento.
type RestockItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"product_name"`
	ImageURL  string          `json:"product_image"`
	Qty       int64           `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// RestockReportResponse reporte de compras del período.
type RestockReportResponse struct {
	TotalCost    MetricWithGrowth `json:"total_cost"`
	TotalRestock CountWithGrowth  `json:"total_restock"`
	AvgCost      MetricWithGrowth `json:"avg_cost"`
	Items        []RestockItem    `json:"items"`
}
