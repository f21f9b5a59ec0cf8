package report

import (
	"context"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// lowStockThreshold existencias por debajo de las cuales un producto aparece
// en la sección de stock bajo.
const lowStockThreshold = 15

// topProductsLimit tamaño del top de productos en dashboard y reportes.
const topProductsLimit = 10

// categoryColors paleta de la gráfica de categorías; el color de cada categoría
// sale de un hash de su nombre para que no cambie entre consultas.
var categoryColors = []string{
	"#4F46E5", "#06B6D4", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#EC4899", "#14B8A6", "#F97316", "#6366F1",
}

// UseCase arma los reportes del negocio a partir de consultas de solo lectura.
type UseCase struct {
	repo repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReportRepository) *UseCase {
	return &UseCase{repo: repo}
}

// parallel ejecuta las funciones a la vez y devuelve el primer error.
func parallel(fns ...func() error) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for _, fn := range fns {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(fn)
	}
	wg.Wait()
	return firstErr
}

// Dashboard métricas principales del rango contra el período anterior de igual duración.
func (uc *UseCase) Dashboard(ctx context.Context, start, end time.Time) (*dto.DashboardResponse, error) {
	prevStart, prevEnd := previousRange(start, end)

	var (
		revenue, prevRevenue decimal.Decimal
		profit, prevProfit   decimal.Decimal
		count, prevCount     int
		top                  []repository.TopProductResult
	)
	err := parallel(
		func() (err error) { revenue, err = uc.repo.Revenue(ctx, start, end); return },
		func() (err error) { prevRevenue, err = uc.repo.Revenue(ctx, prevStart, prevEnd); return },
		func() (err error) { profit, err = uc.repo.Profit(ctx, start, end); return },
		func() (err error) { prevProfit, err = uc.repo.Profit(ctx, prevStart, prevEnd); return },
		func() (err error) { count, err = uc.repo.SaleCount(ctx, start, end); return },
		func() (err error) { prevCount, err = uc.repo.SaleCount(ctx, prevStart, prevEnd); return },
		func() (err error) { top, err = uc.repo.TopProducts(ctx, start, end, topProductsLimit); return },
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Revenue:      dto.MetricWithGrowth{Current: revenue, Before: prevRevenue, Growth: growthPercent(revenue, prevRevenue)},
		Transactions: dto.CountWithGrowth{Current: count, Before: prevCount, Growth: growthPercentInt(count, prevCount)},
		Profit:       dto.MetricWithGrowth{Current: profit, Before: prevProfit, Growth: growthPercent(profit, prevProfit)},
		TopProducts:  make([]dto.TopProduct, 0, len(top)),
	}
	for _, t := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProduct{Name: t.Name, Image: t.ImageURL, Sold: t.Quantity})
	}
	return resp, nil
}

// Sales reporte de ventas: totales, ticket promedio y desglose por método de
// pago. El desglose siempre trae cash y qris aunque no registren ventas.
func (uc *UseCase) Sales(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error) {
	prevStart, prevEnd := previousRange(start, end)

	var (
		revenue, prevRevenue decimal.Decimal
		avg, prevAvg         decimal.Decimal
		count, prevCount     int
		methods              []repository.PaymentMethodResult
	)
	err := parallel(
		func() (err error) { revenue, err = uc.repo.Revenue(ctx, start, end); return },
		func() (err error) { prevRevenue, err = uc.repo.Revenue(ctx, prevStart, prevEnd); return },
		func() (err error) { avg, err = uc.repo.AvgTicket(ctx, start, end); return },
		func() (err error) { prevAvg, err = uc.repo.AvgTicket(ctx, prevStart, prevEnd); return },
		func() (err error) { count, err = uc.repo.SaleCount(ctx, start, end); return },
		func() (err error) { prevCount, err = uc.repo.SaleCount(ctx, prevStart, prevEnd); return },
		func() (err error) { methods, err = uc.repo.PaymentMethods(ctx, start, end); return },
	)
	if err != nil {
		return nil, err
	}

	totals := map[string]decimal.Decimal{
		entity.PaymentCash: decimal.Zero,
		entity.PaymentQRIS: decimal.Zero,
	}
	for _, m := range methods {
		totals[m.Method] = m.Total
	}
	breakdown := make([]dto.PaymentMethodBreakdown, 0, len(totals))
	for _, method := range []string{entity.PaymentCash, entity.PaymentQRIS} {
		percent := float64(0)
		if revenue.GreaterThan(decimal.Zero) {
			ratio, _ := totals[method].Div(revenue).Float64()
			percent = math.Round(ratio*1000) / 10
		}
		breakdown = append(breakdown, dto.PaymentMethodBreakdown{
			Method:  method,
			Total:   totals[method],
			Percent: percent,
		})
	}

	return &dto.SalesReportResponse{
		Sales:          dto.MetricWithGrowth{Current: revenue, Before: prevRevenue, Growth: growthPercent(revenue, prevRevenue)},
		Transactions:   dto.CountWithGrowth{Current: count, Before: prevCount, Growth: growthPercentInt(count, prevCount)},
		AvgTicket:      dto.MetricWithGrowth{Current: avg, Before: prevAvg, Growth: growthPercent(avg, prevAvg)},
		PaymentMethods: breakdown,
	}, nil
}

// Profit utilidad de un día contra el día anterior, con el detalle de cada
// venta. Un día sin ventas degrada a ceros, nunca a error; una consulta
// fallida degrada igual.
func (uc *UseCase) Profit(ctx context.Context, date time.Time) (*dto.ProfitReportResponse, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	prevStart, prevEnd := previousRange(dayStart, dayEnd)

	var (
		profit, prevProfit decimal.Decimal
		revenue            decimal.Decimal
		history            []repository.SalesHistoryResult
	)
	err := parallel(
		func() (err error) { profit, err = uc.repo.Profit(ctx, dayStart, dayEnd); return },
		func() (err error) { prevProfit, err = uc.repo.Profit(ctx, prevStart, prevEnd); return },
		func() (err error) { revenue, err = uc.repo.Revenue(ctx, dayStart, dayEnd); return },
		func() (err error) { history, err = uc.repo.SalesHistory(ctx, dayStart, dayEnd); return },
	)
	if err != nil {
		return &dto.ProfitReportResponse{SalesHistory: []dto.SalesHistoryItem{}}, nil
	}

	margin := float64(0)
	if revenue.GreaterThan(decimal.Zero) {
		ratio, _ := profit.Div(revenue).Float64()
		margin = math.Round(ratio*1000) / 10
	}

	resp := &dto.ProfitReportResponse{
		Profit:       dto.MetricWithGrowth{Current: profit, Before: prevProfit, Growth: growthPercent(profit, prevProfit)},
		Margin:       margin,
		SalesHistory: make([]dto.SalesHistoryItem, 0, len(history)),
	}
	for _, h := range history {
		resp.SalesHistory = append(resp.SalesHistory, dto.SalesHistoryItem{
			TransactionNo: h.TransactionNo,
			Revenue:       h.Revenue,
			Profit:        h.Profit,
		})
	}
	return resp, nil
}

// SalesProducts top de productos con tendencia, ventas por categoría y stock
// bajo. Una consulta fallida degrada a listas vacías, nunca a error.
func (uc *UseCase) SalesProducts(ctx context.Context, start, end time.Time) (*dto.SalesProductsReportResponse, error) {
	prevStart, prevEnd := previousRange(start, end)

	var (
		top, prevTop []repository.TopProductResult
		categories   []repository.CategorySalesResult
		lowStock     []repository.LowStockResult
	)
	err := parallel(
		func() (err error) { top, err = uc.repo.TopProducts(ctx, start, end, topProductsLimit); return },
		func() (err error) {
			prevTop, err = uc.repo.TopProducts(ctx, prevStart, prevEnd, 0)
			return
		},
		func() (err error) { categories, err = uc.repo.SalesByCategory(ctx, start, end); return },
		func() (err error) { lowStock, err = uc.repo.LowStock(ctx, lowStockThreshold); return },
	)
	if err != nil {
		return &dto.SalesProductsReportResponse{
			TopProducts:     []dto.TrendProduct{},
			SalesByCategory: []dto.CategorySales{},
			LowStock:        []dto.LowStockProduct{},
		}, nil
	}

	prevQty := make(map[string]int64, len(prevTop))
	for _, p := range prevTop {
		prevQty[p.ProductID] = p.Quantity
	}

	resp := &dto.SalesProductsReportResponse{
		TopProducts:     make([]dto.TrendProduct, 0, len(top)),
		SalesByCategory: make([]dto.CategorySales, 0, len(categories)),
		LowStock:        make([]dto.LowStockProduct, 0, len(lowStock)),
	}
	for _, t := range top {
		trend := "up"
		if t.Quantity < prevQty[t.ProductID] {
			trend = "down"
		}
		resp.TopProducts = append(resp.TopProducts, dto.TrendProduct{
			ProductID: t.ProductID,
			Name:      t.Name,
			ImageURL:  t.ImageURL,
			Quantity:  t.Quantity,
			Trend:     trend,
		})
	}

	var totalQty int64
	for _, c := range categories {
		totalQty += c.Quantity
	}
	for _, c := range categories {
		percent := float64(0)
		if totalQty > 0 {
			percent = math.Round(float64(c.Quantity)/float64(totalQty)*1000) / 10
		}
		resp.SalesByCategory = append(resp.SalesByCategory, dto.CategorySales{
			CategoryName: c.CategoryName,
			Quantity:     c.Quantity,
			Percent:      percent,
			Color:        colorFor(c.CategoryName),
		})
	}

	for _, ls := range lowStock {
		resp.LowStock = append(resp.LowStock, dto.LowStockProduct{
			ProductID: ls.ProductID,
			Name:      ls.Name,
			ImageURL:  ls.ImageURL,
			Stock:     ls.Stock,
			Unit:      ls.UnitID,
			Threshold: lowStockThreshold,
		})
	}
	return resp, nil
}

// Restock reporte de compras del período contra el anterior.
func (uc *UseCase) Restock(ctx context.Context, start, end time.Time) (*dto.RestockReportResponse, error) {
	prevStart, prevEnd := previousRange(start, end)

	var (
		cost, prevCost decimal.Decimal
		avg, prevAvg   decimal.Decimal
		count, prevCnt int
		items          []repository.RestockItemResult
	)
	err := parallel(
		func() (err error) { cost, err = uc.repo.RestockCost(ctx, start, end); return },
		func() (err error) { prevCost, err = uc.repo.RestockCost(ctx, prevStart, prevEnd); return },
		func() (err error) { avg, err = uc.repo.AvgRestockCost(ctx, start, end); return },
		func() (err error) { prevAvg, err = uc.repo.AvgRestockCost(ctx, prevStart, prevEnd); return },
		func() (err error) { count, err = uc.repo.RestockCount(ctx, start, end); return },
		func() (err error) { prevCnt, err = uc.repo.RestockCount(ctx, prevStart, prevEnd); return },
		func() (err error) { items, err = uc.repo.RestockItems(ctx, start, end); return },
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.RestockReportResponse{
		TotalCost:    dto.MetricWithGrowth{Current: cost, Before: prevCost, Growth: growthPercent(cost, prevCost)},
		TotalRestock: dto.CountWithGrowth{Current: count, Before: prevCnt, Growth: growthPercentInt(count, prevCnt)},
		AvgCost:      dto.MetricWithGrowth{Current: avg, Before: prevAvg, Growth: growthPercent(avg, prevAvg)},
		Items:        make([]dto.RestockItem, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.RestockItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Qty:       it.Qty,
			Price:     it.Price,
			Total:     it.Total,
		})
	}
	return resp, nil
}

func colorFor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return categoryColors[int(h.Sum32())%len(categoryColors)]
}
