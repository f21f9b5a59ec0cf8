package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// fakeReportRepo implementa todas las consultas del reporte en memoria y
// registra los argumentos recibidos. Con err asignado, toda consulta falla.
type fakeReportRepo struct {
	mu  sync.Mutex
	err error

	history      []repository.SalesHistoryResult
	historyStart time.Time
	historyEnd   time.Time
	topLimits    []int
}

func (f *fakeReportRepo) Revenue(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeReportRepo) SaleCount(context.Context, time.Time, time.Time) (int, error) {
	return 0, f.err
}

func (f *fakeReportRepo) Profit(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeReportRepo) Cost(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeReportRepo) AvgTicket(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeReportRepo) TopProducts(_ context.Context, _, _ time.Time, limit int) ([]repository.TopProductResult, error) {
	f.mu.Lock()
	f.topLimits = append(f.topLimits, limit)
	f.mu.Unlock()
	return nil, f.err
}

func (f *fakeReportRepo) PaymentMethods(context.Context, time.Time, time.Time) ([]repository.PaymentMethodResult, error) {
	return nil, f.err
}

func (f *fakeReportRepo) SalesHistory(_ context.Context, start, end time.Time) ([]repository.SalesHistoryResult, error) {
	f.mu.Lock()
	f.historyStart, f.historyEnd = start, end
	f.mu.Unlock()
	return f.history, f.err
}

func (f *fakeReportRepo) SalesByCategory(context.Context, time.Time, time.Time) ([]repository.CategorySalesResult, error) {
	return nil, f.err
}

func (f *fakeReportRepo) LowStock(context.Context, int64) ([]repository.LowStockResult, error) {
	return nil, f.err
}

func (f *fakeReportRepo) RestockCost(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeReportRepo) RestockCount(context.Context, time.Time, time.Time) (int, error) {
	return 0, f.err
}

func (f *fakeReportRepo) AvgRestockCost(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeReportRepo) RestockItems(context.Context, time.Time, time.Time) ([]repository.RestockItemResult, error) {
	return nil, f.err
}

func (f *fakeReportRepo) RestockCandidates(context.Context, string, int) ([]repository.RestockCandidate, error) {
	return nil, f.err
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Profit
// ──────────────────────────────────────────────────────────────────────────────

// Las ventas se guardan con hora, así que el historial del día debe pedirse
// como rango [medianoche, medianoche siguiente) y no por igualdad de fecha.
func TestProfit_HistorialCubreElDiaCompleto(t *testing.T) {
	repo := &fakeReportRepo{history: []repository.SalesHistoryResult{
		{TransactionNo: "SAL-20260829-0001", Revenue: decimal.RequireFromString("30.00"), Profit: decimal.RequireFromString("15.00")},
	}}
	uc := NewUseCase(repo)

	afternoon := time.Date(2026, 8, 29, 14, 32, 5, 0, time.Local)
	out, err := uc.Profit(context.Background(), afternoon)
	require.NoError(t, err)

	wantStart := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	assert.True(t, repo.historyStart.Equal(wantStart), "el rango del historial arranca a medianoche")
	assert.True(t, repo.historyEnd.Equal(wantStart.AddDate(0, 0, 1)), "y cierra en la medianoche siguiente")
	require.Len(t, out.SalesHistory, 1, "una venta de la tarde debe aparecer en el historial del día")
	assert.Equal(t, "SAL-20260829-0001", out.SalesHistory[0].TransactionNo)
}

func TestProfit_FallaDeConsultaDegradaACeros(t *testing.T) {
	repo := &fakeReportRepo{err: errors.New("db caída")}
	uc := NewUseCase(repo)

	out, err := uc.Profit(context.Background(), time.Now())
	require.NoError(t, err, "la pantalla de utilidad degrada a ceros en vez de fallar")

	assert.True(t, out.Profit.Current.IsZero())
	assert.True(t, out.Profit.Before.IsZero())
	assert.Zero(t, out.Margin)
	assert.Empty(t, out.SalesHistory)
}

// ──────────────────────────────────────────────────────────────────────────────
// SalesProducts
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesProducts_FallaDeConsultaDegradaAVacio(t *testing.T) {
	repo := &fakeReportRepo{err: errors.New("db caída")}
	uc := NewUseCase(repo)

	start := time.Date(2026, 8, 22, 0, 0, 0, 0, time.Local)
	out, err := uc.SalesProducts(context.Background(), start, start.AddDate(0, 0, 7))
	require.NoError(t, err, "el reporte de productos degrada a listas vacías en vez de fallar")

	assert.Empty(t, out.TopProducts)
	assert.Empty(t, out.SalesByCategory)
	assert.Empty(t, out.LowStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_TopDeDiezProductos(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := NewUseCase(repo)

	start := time.Date(2026, 8, 22, 0, 0, 0, 0, time.Local)
	_, err := uc.Dashboard(context.Background(), start, start.AddDate(0, 0, 7))
	require.NoError(t, err)

	require.Len(t, repo.topLimits, 1)
	assert.Equal(t, 10, repo.topLimits[0], "el dashboard pide el top 10 de productos")
}
