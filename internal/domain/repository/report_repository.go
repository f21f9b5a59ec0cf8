package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult fila cruda del top de productos vendidos en un período.
type TopProductResult struct {
	ProductID string
	Name      string
	ImageURL  string
	Quantity  int64
}

// PaymentMethodResult total vendido por método de pago.
type PaymentMethodResult struct {
	Method string
	Total  decimal.Decimal
}

// SalesHistoryResult venta individual de un día con su utilidad.
type SalesHistoryResult struct {
	TransactionNo string
	Revenue       decimal.Decimal
	Profit        decimal.Decimal
}

// CategorySalesResult unidades vendidas por categoría.
type CategorySalesResult struct {
	CategoryName string
	Quantity     int64
}

// LowStockResult producto activo con existencias por debajo del umbral.
type LowStockResult struct {
	ProductID string
	Name      string
	ImageURL  string
	Stock     int64
	UnitID    string
}

// RestockItemResult línea de compra del período con su costo.
type RestockItemResult struct {
	ProductID string
	Name      string
	ImageURL  string
	Qty       int64
	Price     decimal.Decimal
	Total     decimal.Decimal
}

// RestockCandidate producto activo con su stock actual y las unidades vendidas
// en la ventana de días considerada para la recomendación de reabastecimiento.
type RestockCandidate struct {
	ProductID    string
	Name         string
	CategoryName string
	ImageURL     string
	UnitID       string
	CurrentStock int64
	UnitsSold    int64
}

// ReportRepository define las consultas de solo lectura para reportes y
// recomendaciones. Las implementaciones no modifican datos.
type ReportRepository interface {
	// Revenue suma total_amount de las ventas del rango (cero si no hay).
	Revenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// SaleCount cuenta las transacciones de venta del rango.
	SaleCount(ctx context.Context, start, end time.Time) (int, error)
	// Profit calcula ingresos menos costo de lo vendido (qty * purchase_price vigente).
	Profit(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// Cost calcula el costo de lo vendido en el rango.
	Cost(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// AvgTicket promedio de total_amount por venta del rango.
	AvgTicket(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// TopProducts más vendidos del rango; limit 0 trae todos.
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
	PaymentMethods(ctx context.Context, start, end time.Time) ([]PaymentMethodResult, error)
	// SalesHistory ventas individuales del rango semiabierto [start, end).
	SalesHistory(ctx context.Context, start, end time.Time) ([]SalesHistoryResult, error)
	SalesByCategory(ctx context.Context, start, end time.Time) ([]CategorySalesResult, error)
	// LowStock productos activos con SUM(qty) < threshold, ordenados por stock ascendente.
	LowStock(ctx context.Context, threshold int64) ([]LowStockResult, error)
	// RestockCost suma total de compras del rango; RestockCount y AvgRestockCost análogos.
	RestockCost(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	RestockCount(ctx context.Context, start, end time.Time) (int, error)
	AvgRestockCost(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	RestockItems(ctx context.Context, start, end time.Time) ([]RestockItemResult, error)
	// RestockCandidates productos activos con stock y ventas de los últimos days días.
	// search filtra por nombre o código de barras (insensible a tildes).
	RestockCandidates(ctx context.Context, search string, days int) ([]RestockCandidate, error)
}
