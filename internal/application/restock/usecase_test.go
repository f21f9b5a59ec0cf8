package restock

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

type fakeReportRepo struct {
	repository.ReportRepository
	candidates []repository.RestockCandidate
}

func (f *fakeReportRepo) RestockCandidates(_ context.Context, _ string, _ int) ([]repository.RestockCandidate, error) {
	return f.candidates, nil
}

// ──────────────────────────────────────────────
// Recommendations
// ──────────────────────────────────────────────

func TestRecommendations_VentanaSinConfigurar(t *testing.T) {
	uc := NewUseCase(&fakeReportRepo{}, 0)

	_, err := uc.Recommendations(context.Background(), "", "", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ventana configurada debe rechazar la consulta")
}

func TestRecommendations_CalculaDiasYCantidad(t *testing.T) {
	// Ventana de 7 días: vendió 14 unidades (2 por día) y quedan 3.
	// Días estimados 1.5, reponer 7*2-3 = 11.
	repo := &fakeReportRepo{candidates: []repository.RestockCandidate{
		{ProductID: "p1", Name: "Café", CurrentStock: 3, UnitsSold: 14},
	}}
	uc := NewUseCase(repo, 7)

	items, err := uc.Recommendations(context.Background(), "", "", "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.True(t, items[0].EstimatedDays.Known)
	assert.Equal(t, 1.5, items[0].EstimatedDays.Days, "3 de stock a 2 por día son 1.5 días")
	assert.Equal(t, int64(11), items[0].RestockQty, "debe reponer lo que falta para cubrir la ventana")
	assert.True(t, items[0].IsNeedRestock)
}

func TestRecommendations_StockSuficienteNoAparece(t *testing.T) {
	// Vendió 7 en 7 días (1 por día) y tiene 30: cubre la ventana de sobra.
	repo := &fakeReportRepo{candidates: []repository.RestockCandidate{
		{ProductID: "p1", Name: "Azúcar", CurrentStock: 30, UnitsSold: 7},
	}}
	uc := NewUseCase(repo, 7)

	items, err := uc.Recommendations(context.Background(), "", "", "")
	require.NoError(t, err)

	assert.Empty(t, items, "un producto con stock para toda la ventana no se recomienda")
}

func TestRecommendations_SinVentasNoAparece(t *testing.T) {
	repo := &fakeReportRepo{candidates: []repository.RestockCandidate{
		{ProductID: "p1", Name: "Sal", CurrentStock: 2, UnitsSold: 0},
	}}
	uc := NewUseCase(repo, 7)

	items, err := uc.Recommendations(context.Background(), "", "", "")
	require.NoError(t, err)

	assert.Empty(t, items, "sin ventas en la ventana no hay ritmo que proyectar")
}

func TestRecommendations_CantidadNuncaNegativa(t *testing.T) {
	// 7 vendidas en 7 días y 6 de stock: 6 días restantes, reponer 7-6 = 1.
	repo := &fakeReportRepo{candidates: []repository.RestockCandidate{
		{ProductID: "p1", Name: "Arroz", CurrentStock: 6, UnitsSold: 7},
	}}
	uc := NewUseCase(repo, 7)

	items, err := uc.Recommendations(context.Background(), "", "", "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.GreaterOrEqual(t, items[0].RestockQty, int64(0), "la cantidad a reponer nunca es negativa")
	assert.Equal(t, int64(1), items[0].RestockQty)
}

func TestRecommendations_OrdenPorDiasRestantes(t *testing.T) {
	repo := &fakeReportRepo{candidates: []repository.RestockCandidate{
		{ProductID: "p1", Name: "Lento", CurrentStock: 6, UnitsSold: 7},  // 6.0 días
		{ProductID: "p2", Name: "Urgente", CurrentStock: 1, UnitsSold: 14}, // 0.5 días
	}}
	uc := NewUseCase(repo, 7)

	items, err := uc.Recommendations(context.Background(), "", "days_left", "asc")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Urgente", items[0].ProductName, "el que antes se agota va primero")
}

func TestRecommendations_ClavesLargasDeOrden(t *testing.T) {
	repo := &fakeReportRepo{candidates: []repository.RestockCandidate{
		{ProductID: "p1", Name: "Lento", CurrentStock: 6, UnitsSold: 7},    // 6.0 días
		{ProductID: "p2", Name: "Urgente", CurrentStock: 1, UnitsSold: 14}, // 0.5 días
	}}
	uc := NewUseCase(repo, 7)

	// estimated_days_left equivale a days_left.
	items, err := uc.Recommendations(context.Background(), "", "estimated_days_left", "asc")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Urgente", items[0].ProductName)

	// current_stock equivale a stock.
	items, err = uc.Recommendations(context.Background(), "", "current_stock", "desc")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lento", items[0].ProductName, "con desc el de más stock va primero")
}

// ──────────────────────────────────────────────
// DaysLeft JSON
// ──────────────────────────────────────────────

func TestDaysLeft_SerializaNumeroOTexto(t *testing.T) {
	known, err := json.Marshal(dto.DaysLeft{Known: true, Days: 1.5})
	require.NoError(t, err)
	assert.Equal(t, "1.5", string(known))

	unknown, err := json.Marshal(dto.DaysLeft{})
	require.NoError(t, err)
	assert.Equal(t, `"Stock not decreasing"`, string(unknown))
}
