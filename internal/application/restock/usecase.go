package restock

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// UseCase calcula recomendaciones de reabastecimiento a partir de las ventas
// de una ventana reciente de días configurada por despliegue.
type UseCase struct {
	repo    repository.ReportRepository
	avgDays int
}

// NewUseCase construye el caso de uso. avgDays es la ventana de días sobre la
// que se promedia la venta diaria; debe ser positiva.
func NewUseCase(repo repository.ReportRepository, avgDays int) *UseCase {
	return &UseCase{repo: repo, avgDays: avgDays}
}

// Recommendations lista los productos que conviene reabastecer: aquellos cuyo
// stock actual no alcanza para cubrir la ventana al ritmo de venta promedio.
// sortBy acepta product_name, current_stock o estimated_days_left (también las
// formas cortas name, stock y days_left); los productos sin ventas van al
// final cuando se ordena por días restantes.
func (uc *UseCase) Recommendations(ctx context.Context, search, sortBy, sortOrder string) ([]dto.RestockRecommendationItem, error) {
	if uc.avgDays <= 0 {
		return nil, fmt.Errorf("%w: la ventana de días de reabastecimiento no está configurada", domain.ErrInvalidInput)
	}

	candidates, err := uc.repo.RestockCandidates(ctx, search, uc.avgDays)
	if err != nil {
		return nil, err
	}

	window := float64(uc.avgDays)
	items := make([]dto.RestockRecommendationItem, 0, len(candidates))
	for _, c := range candidates {
		avgPerDay := float64(c.UnitsSold) / window

		var daysLeft dto.DaysLeft
		if avgPerDay > 0 {
			daysLeft = dto.DaysLeft{
				Known: true,
				Days:  math.Round(float64(c.CurrentStock)/avgPerDay*10) / 10,
			}
		}

		// Solo amerita reabastecer si el stock se agota antes de cerrar la ventana.
		if daysLeft.Known && daysLeft.Days < window {
			qty := int64(math.Round(window*avgPerDay - float64(c.CurrentStock)))
			if qty < 0 {
				qty = 0
			}
			items = append(items, dto.RestockRecommendationItem{
				ProductName:   c.Name,
				CategoryName:  c.CategoryName,
				ImageURL:      c.ImageURL,
				Unit:          c.UnitID,
				CurrentStock:  c.CurrentStock,
				EstimatedDays: daysLeft,
				RestockQty:    qty,
				IsNeedRestock: true,
			})
		}
	}

	sortItems(items, sortBy, sortOrder)
	return items, nil
}

func sortItems(items []dto.RestockRecommendationItem, sortBy, sortOrder string) {
	desc := sortOrder == "desc"
	less := func(i, j int) bool { return items[i].ProductName < items[j].ProductName }

	switch sortBy {
	case "stock", "current_stock":
		less = func(i, j int) bool { return items[i].CurrentStock < items[j].CurrentStock }
	case "days_left", "estimated_days_left":
		less = func(i, j int) bool {
			a, b := items[i].EstimatedDays, items[j].EstimatedDays
			// Los productos sin ventas no tienen estimación y van al final.
			if a.Known != b.Known {
				return a.Known
			}
			if !a.Known {
				return false
			}
			return a.Days < b.Days
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
