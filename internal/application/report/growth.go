package report

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// growthPercent crecimiento porcentual con un decimal. Sin base de comparación
// el crecimiento es 100 si hay valor actual y 0 si tampoco lo hay.
func growthPercent(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return 100
		}
		return 0
	}
	ratio, _ := current.Sub(previous).Div(previous).Float64()
	return math.Round(ratio*1000) / 10
}

// growthPercentInt variante para conteos.
func growthPercentInt(current, previous int) float64 {
	return growthPercent(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

// previousRange devuelve el período inmediatamente anterior con la misma
// duración: [start-d, start) para un rango [start, end) de duración d.
func previousRange(start, end time.Time) (time.Time, time.Time) {
	span := end.Sub(start)
	return start.Add(-span), start
}
