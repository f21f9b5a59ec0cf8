package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y recomendaciones.
// El costo de lo vendido usa el precio de compra vigente del producto
// (fila de prices más reciente), igual que los totales de utilidad.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// latestPriceJoin subconsulta reutilizada: precio vigente por producto.
const latestPriceJoin = `
	LEFT JOIN LATERAL (
		SELECT purchase_price FROM prices
		WHERE product_id = ti.product_id
		ORDER BY updated_at DESC LIMIT 1
	) pr ON true`

func (r *ReportRepo) scanDecimal(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var d decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Revenue suma total_amount de las ventas del rango.
func (r *ReportRepo) Revenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	d, err := r.scanDecimal(ctx, `
		SELECT COALESCE(SUM(t.total_amount), 0)
		FROM transactions t
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2`, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("revenue: %w", err)
	}
	return d, nil
}

// SaleCount cuenta las ventas del rango.
func (r *ReportRepo) SaleCount(ctx context.Context, start, end time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions t
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2`, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sale count: %w", err)
	}
	return n, nil
}

// Profit calcula ingresos menos costo de lo vendido en el rango.
func (r *ReportRepo) Profit(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	d, err := r.scanDecimal(ctx, `
		SELECT COALESCE(SUM(t.total_amount) - SUM(ti.qty * COALESCE(pr.purchase_price, 0)), 0)
		FROM transactions t
		LEFT JOIN transaction_items ti ON ti.transaction_id = t.id`+latestPriceJoin+`
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2`, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("profit: %w", err)
	}
	return d, nil
}

// Cost calcula el costo de lo vendido en el rango.
func (r *ReportRepo) Cost(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	d, err := r.scanDecimal(ctx, `
		SELECT COALESCE(SUM(ti.qty * COALESCE(pr.purchase_price, 0)), 0)
		FROM transactions t
		LEFT JOIN transaction_items ti ON ti.transaction_id = t.id`+latestPriceJoin+`
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2`, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cost: %w", err)
	}
	return d, nil
}

// AvgTicket promedio de total_amount por venta del rango.
func (r *ReportRepo) AvgTicket(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	d, err := r.scanDecimal(ctx, `
		SELECT COALESCE(AVG(t.total_amount), 0)
		FROM transactions t
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2`, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("avg ticket: %w", err)
	}
	return d, nil
}

// TopProducts productos más vendidos del rango.
func (r *ReportRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.image_url, ''), SUM(ti.qty) AS sold
		FROM transactions t
		JOIN transaction_items ti ON ti.transaction_id = t.id
		JOIN products p ON p.id = ti.product_id
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2
		GROUP BY p.id, p.name, p.image_url
		ORDER BY sold DESC
		LIMIT NULLIF($3, 0)`, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top productos: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.Name, &t.ImageURL, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan top producto: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// PaymentMethods total vendido por método de pago del rango.
func (r *ReportRepo) PaymentMethods(ctx context.Context, start, end time.Time) ([]repository.PaymentMethodResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT COALESCE(t.payment_type, 'cash') AS method, SUM(t.total_amount) AS total
		FROM transactions t
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2
		GROUP BY t.payment_type
		ORDER BY total DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("métodos de pago: %w", err)
	}
	defer rows.Close()

	var out []repository.PaymentMethodResult
	for rows.Next() {
		var m repository.PaymentMethodResult
		if err := rows.Scan(&m.Method, &m.Total); err != nil {
			return nil, fmt.Errorf("scan método de pago: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SalesHistory ventas individuales del rango con su utilidad, recientes primero.
// Las cabeceras guardan fecha con hora, así que el día se consulta como rango
// semiabierto [start, end) y no por igualdad.
func (r *ReportRepo) SalesHistory(ctx context.Context, start, end time.Time) ([]repository.SalesHistoryResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.no, t.total_amount,
			COALESCE(t.total_amount - SUM(ti.qty * COALESCE(pr.purchase_price, 0)), 0) AS profit
		FROM transactions t
		LEFT JOIN transaction_items ti ON ti.transaction_id = t.id`+latestPriceJoin+`
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2
		GROUP BY t.id, t.no, t.total_amount, t.created_at
		ORDER BY t.created_at DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("historial de ventas: %w", err)
	}
	defer rows.Close()

	var out []repository.SalesHistoryResult
	for rows.Next() {
		var h repository.SalesHistoryResult
		if err := rows.Scan(&h.TransactionNo, &h.Revenue, &h.Profit); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// SalesByCategory unidades vendidas por categoría del rango.
func (r *ReportRepo) SalesByCategory(ctx context.Context, start, end time.Time) ([]repository.CategorySalesResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT COALESCE(NULLIF(p.category_id, ''), 'Uncategorized') AS category_name, SUM(ti.qty) AS quantity
		FROM transactions t
		JOIN transaction_items ti ON ti.transaction_id = t.id
		JOIN products p ON p.id = ti.product_id
		WHERE t.type = 'sale' AND t.date >= $1 AND t.date < $2
		GROUP BY 1
		ORDER BY quantity DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("ventas por categoría: %w", err)
	}
	defer rows.Close()

	var out []repository.CategorySalesResult
	for rows.Next() {
		var c repository.CategorySalesResult
		if err := rows.Scan(&c.CategoryName, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan categoría: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LowStock productos activos con SUM(qty) < threshold, menor stock primero.
func (r *ReportRepo) LowStock(ctx context.Context, threshold int64) ([]repository.LowStockResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.image_url, ''), COALESCE(SUM(s.qty), 0) AS stock, COALESCE(p.unit_id, '')
		FROM products p
		LEFT JOIN stocks s ON s.product_id = p.id
		WHERE p.is_active = true
		GROUP BY p.id, p.name, p.image_url, p.unit_id
		HAVING COALESCE(SUM(s.qty), 0) < $1
		ORDER BY stock ASC`, threshold)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockResult
	for rows.Next() {
		var l repository.LowStockResult
		if err := rows.Scan(&l.ProductID, &l.Name, &l.ImageURL, &l.Stock, &l.UnitID); err != nil {
			return nil, fmt.Errorf("scan stock bajo: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// RestockCost suma total de compras del rango.
func (r *ReportRepo) RestockCost(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	d, err := r.scanDecimal(ctx, `
		SELECT COALESCE(SUM(t.total_amount), 0)
		FROM transactions t
		WHERE t.type = 'purchase' AND t.date >= $1 AND t.date < $2`, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("costo de compras: %w", err)
	}
	return d, nil
}

// RestockCount cuenta las compras del rango.
func (r *ReportRepo) RestockCount(ctx context.Context, start, end time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions t
		WHERE t.type = 'purchase' AND t.date >= $1 AND t.date < $2`, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("conteo de compras: %w", err)
	}
	return n, nil
}

// AvgRestockCost promedio de total_amount por compra del rango.
func (r *ReportRepo) AvgRestockCost(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	d, err := r.scanDecimal(ctx, `
		SELECT COALESCE(AVG(t.total_amount), 0)
		FROM transactions t
		WHERE t.type = 'purchase' AND t.date >= $1 AND t.date < $2`, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("costo promedio de compras: %w", err)
	}
	return d, nil
}

// RestockItems líneas de compra del período con su costo, mayor total primero.
func (r *ReportRepo) RestockItems(ctx context.Context, start, end time.Time) ([]repository.RestockItemResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.image_url, ''), ti.qty,
			COALESCE(pr.purchase_price, 0) AS price,
			ti.qty * COALESCE(pr.purchase_price, 0) AS total
		FROM transactions t
		JOIN transaction_items ti ON ti.transaction_id = t.id
		JOIN products p ON p.id = ti.product_id`+latestPriceJoin+`
		WHERE t.type = 'purchase' AND t.date >= $1 AND t.date < $2
		ORDER BY total DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("líneas de compra: %w", err)
	}
	defer rows.Close()

	var out []repository.RestockItemResult
	for rows.Next() {
		var it repository.RestockItemResult
		if err := rows.Scan(&it.ProductID, &it.Name, &it.ImageURL, &it.Qty, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan línea de compra: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// RestockCandidates productos activos con stock actual y unidades vendidas en
// los últimos days días (las filas del libro con qty negativo de tipo sale).
func (r *ReportRepo) RestockCandidates(ctx context.Context, search string, days int) ([]repository.RestockCandidate, error) {
	where := `WHERE p.is_active = true`
	args := []any{days}
	if search != "" {
		args = append(args, likePattern(search))
		where += fmt.Sprintf(` AND (p.name ILIKE $%d OR p.barcode ILIKE $%d)`, len(args), len(args))
	}
	query := `
		SELECT p.id, p.name, COALESCE(NULLIF(p.category_id, ''), 'Uncategorized'),
			COALESCE(p.image_url, ''), COALESCE(p.unit_id, 'pcs'),
			COALESCE((SELECT SUM(s.qty) FROM stocks s WHERE s.product_id = p.id), 0) AS current_stock,
			COALESCE((
				SELECT SUM(-s.qty) FROM stocks s
				WHERE s.product_id = p.id AND s.type = 'sale'
					AND s.created_at >= now() - ($1 || ' days')::interval
			), 0) AS units_sold
		FROM products p
		` + where + `
		ORDER BY p.name ASC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("candidatos de reabastecimiento: %w", err)
	}
	defer rows.Close()

	var out []repository.RestockCandidate
	for rows.Next() {
		var c repository.RestockCandidate
		if err := rows.Scan(&c.ProductID, &c.Name, &c.CategoryName, &c.ImageURL, &c.UnitID,
			&c.CurrentStock, &c.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan candidato: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
